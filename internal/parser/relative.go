// Package parser turns text typed into a date field into dates.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
)

// ErrUnrecognized is returned when text is not in any supported notation.
var ErrUnrecognized = errors.New("invalid date format")

// Option configures Relative.
type Option func(*relativeOptions)

type relativeOptions struct {
	rejectPast bool
}

// RejectPast makes dates before today a parse error.
func RejectPast() Option {
	return func(o *relativeOptions) {
		o.rejectPast = true
	}
}

// Relative returns a parse function for relative shortcuts. now is called
// once per parse. Supports:
// - "t" or "today" - today
// - "tm" or "tomorrow" - tomorrow
// - "y" or "yesterday" - yesterday
// - "mon", "tue", "wed", "thu", "fri", "sat", "sun" - next occurrence of weekday
// - "+3d" / "-3d" - 3 days from / before today
// - "+2w" / "-2w" - 2 weeks from / before today
// - "YYYY-MM-DD" - absolute date
//
// Results are at midnight in now's location.
func Relative(now func() time.Time, opts ...Option) dateinput.ParseFunc {
	var o relativeOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(raw string) (*time.Time, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		t, err := parseRelativeWithNow(raw, now(), o)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
}

func parseRelativeWithNow(input string, now time.Time, o relativeOptions) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	today := startOfDay(now)

	result, err := resolveRelative(input, today)
	if err != nil {
		return time.Time{}, err
	}

	if o.rejectPast && result.Before(today) {
		return time.Time{}, fmt.Errorf("date cannot be in the past: %s", input)
	}

	return result, nil
}

func resolveRelative(input string, today time.Time) (time.Time, error) {
	// Check for absolute date (YYYY-MM-DD)
	if len(input) == 10 && input[4] == '-' && input[7] == '-' {
		parsed, err := time.Parse("2006-01-02", input)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date: %s", input)
		}
		// Keep the calendar day, move it into today's location
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, today.Location()), nil
	}

	switch input {
	case "t", "today":
		return today, nil
	case "tm", "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "y", "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if len(input) > 2 && (input[0] == '+' || input[0] == '-') {
		switch input[len(input)-1] {
		case 'd':
			n, err := parseOffset(input, "days")
			if err != nil {
				return time.Time{}, err
			}
			return today.AddDate(0, 0, n), nil
		case 'w':
			n, err := parseOffset(input, "weeks")
			if err != nil {
				return time.Time{}, err
			}
			return today.AddDate(0, 0, n*7), nil
		}
	}

	if _, ok := weekdayMap[input]; ok {
		return nextWeekday(input, today)
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrUnrecognized, input)
}

// parseOffset reads "+3d" / "-2w" style offsets. The sign is required and
// the magnitude must be positive.
func parseOffset(input, unit string) (int, error) {
	sign := 1
	if input[0] == '-' {
		sign = -1
	}
	n, err := strconv.Atoi(input[1 : len(input)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %s", unit, input)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must be positive", unit)
	}
	if n == 0 {
		return 0, fmt.Errorf("use 't' or 'today' instead of '%s'", input)
	}
	return sign * n, nil
}

var weekdayMap = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// nextWeekday returns the next occurrence of weekday strictly after today.
func nextWeekday(weekday string, today time.Time) (time.Time, error) {
	targetWeekday, ok := weekdayMap[strings.ToLower(strings.TrimSpace(weekday))]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid weekday: %s", weekday)
	}

	daysUntil := int(targetWeekday - today.Weekday())

	// If target is today or in the past this week, go to next week
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return today.AddDate(0, 0, daysUntil), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
