package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/ncruces/go-strftime"
)

// Layouts returns a parse function trying each Go layout in order. Dates
// are read in loc; a nil loc means local time.
func Layouts(loc *time.Location, layouts ...string) dateinput.ParseFunc {
	if loc == nil {
		loc = time.Local
	}

	return func(raw string) (*time.Time, error) {
		input := strings.TrimSpace(raw)
		if input == "" {
			return nil, nil
		}

		for _, layout := range layouts {
			t, err := time.ParseInLocation(layout, input, loc)
			if err == nil {
				return &t, nil
			}
			// A value that matched the layout but is out of range is a
			// real error, not a reason to try the next layout.
			var pe *time.ParseError
			if errors.As(err, &pe) && strings.HasSuffix(pe.Message, "out of range") {
				return nil, fmt.Errorf("invalid date: %s%s", input, pe.Message)
			}
		}

		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, input)
	}
}

// Strftime returns a parse function for a strftime pattern.
func Strftime(loc *time.Location, pattern string) dateinput.ParseFunc {
	layout, err := strftime.Layout(pattern)
	if err != nil {
		return func(raw string) (*time.Time, error) {
			if strings.TrimSpace(raw) == "" {
				return nil, nil
			}
			return nil, fmt.Errorf("unsupported strftime pattern %q: %w", pattern, err)
		}
	}
	return Layouts(loc, layout)
}

// Chain tries each parser in order and returns the first usable date.
// Empty text is always an intentional clear. When every parser fails, the
// first error that says more than "unrecognized" is returned.
func Chain(parsers ...dateinput.ParseFunc) dateinput.ParseFunc {
	return func(raw string) (*time.Time, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}

		var specific error
		for _, parse := range parsers {
			t, err := parse(raw)
			if err == nil && dateinput.IsValid(t) {
				return t, nil
			}
			if err != nil && specific == nil && !errors.Is(err, ErrUnrecognized) {
				specific = err
			}
		}

		if specific != nil {
			return nil, specific
		}
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, strings.TrimSpace(raw))
	}
}

// NotBefore wraps parse so that dates before today are an error. It applies
// whichever notation produced the date.
func NotBefore(parse dateinput.ParseFunc, now func() time.Time) dateinput.ParseFunc {
	return func(raw string) (*time.Time, error) {
		t, err := parse(raw)
		if err != nil || t == nil {
			return t, err
		}
		today := startOfDay(now())
		if startOfDay(t.In(today.Location())).Before(today) {
			return nil, fmt.Errorf("date cannot be in the past: %s", strings.TrimSpace(raw))
		}
		return t, nil
	}
}
