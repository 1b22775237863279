// Package dateinput keeps the text of a date entry field in step with the
// date value it edits.
//
// The field shows canonical text derived from an externally owned value
// until the user types. From the first keystroke the typed text is held
// verbatim until the field loses focus, at which point it is parsed and
// reported back to the owner of the value.
package dateinput

import "time"

// Formatter is the set of date decomposition operations a Localizer may
// rely on. The core passes it through untouched.
type Formatter interface {
	Location() *time.Location
	Date(t time.Time) (year int, month time.Month, day int)
	Clock(t time.Time) (hour, min, sec int)
	Weekday(t time.Time) time.Weekday
}

// Localizer turns a date into text for a format of type F.
// FormatDate must be total for any valid date and any format the caller
// supplies.
type Localizer[F any] interface {
	FormatDate(t time.Time, formatter Formatter, format F) string
}

// LocalizerFunc adapts a plain function to Localizer.
type LocalizerFunc[F any] func(t time.Time, formatter Formatter, format F) string

// FormatDate calls f.
func (f LocalizerFunc[F]) FormatDate(t time.Time, formatter Formatter, format F) string {
	return f(t, formatter, format)
}

// ParseFunc turns typed text into a date. A nil date means the text could
// not be parsed; the error, when present, says why.
type ParseFunc func(raw string) (*time.Time, error)

// ChangeFunc receives the outcome of a commit together with the text the
// user had typed.
type ChangeFunc func(date *time.Time, raw string)

// IsValid reports whether t holds a usable instant. Both a nil pointer and
// the zero time are treated as absent.
func IsValid(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

// IsNullOrInvalid reports whether t is nil or not a usable instant.
func IsNullOrInvalid(t *time.Time) bool {
	return !IsValid(t)
}

// DeriveText returns the text a field shows when no edit is in progress.
// Absent or invalid values derive the empty string.
func DeriveText[F any](value *time.Time, editing bool, editFormat, displayFormat F, formatter Formatter, localizer Localizer[F]) string {
	if IsNullOrInvalid(value) {
		return ""
	}
	format := displayFormat
	if editing {
		format = editFormat
	}
	return localizer.FormatDate(*value, formatter, format)
}
