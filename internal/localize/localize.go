// Package localize provides the formatters and localizers date fields are
// rendered with.
package localize

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/ncruces/go-strftime"
)

// Calendar decomposes dates in a fixed location.
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar for loc. A nil loc means local time.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's location.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

func (c Calendar) Date(t time.Time) (int, time.Month, int) {
	return t.In(c.Location()).Date()
}

func (c Calendar) Clock(t time.Time) (int, int, int) {
	return t.In(c.Location()).Clock()
}

func (c Calendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.Location()).Weekday()
}

// Layout formats with Go reference layouts ("2006-01-02").
type Layout struct{}

func (Layout) FormatDate(t time.Time, f dateinput.Formatter, layout string) string {
	return t.In(f.Location()).Format(layout)
}

// Strftime formats with C strftime patterns ("%Y-%m-%d").
type Strftime struct{}

func (Strftime) FormatDate(t time.Time, f dateinput.Formatter, pattern string) string {
	return strftime.Format(pattern, t.In(f.Location()))
}

// Style is a named date style.
type Style int

const (
	StyleISO Style = iota
	StyleShort
	StyleMedium
	StyleLong
	StyleFull
)

var styleNames = map[Style]string{
	StyleISO:    "iso",
	StyleShort:  "short",
	StyleMedium: "medium",
	StyleLong:   "long",
	StyleFull:   "full",
}

var styleLayouts = map[Style]string{
	StyleISO:    "2006-01-02",
	StyleShort:  "1/2/2006",
	StyleMedium: "Jan 2, 2006",
	StyleLong:   "January 2, 2006",
	StyleFull:   "Monday, January 2, 2006",
}

// Layout returns the Go layout that reads text written in style s.
func (s Style) Layout() string {
	if layout, ok := styleLayouts[s]; ok {
		return layout
	}
	return styleLayouts[StyleISO]
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle looks a style up by name.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown date style: %q", name)
}

// Styles renders named styles from the formatter's decomposition:
//
//	iso     2024-01-15
//	short   1/15/2024
//	medium  Jan 15, 2024
//	long    January 15, 2024
//	full    Monday, January 15, 2024
type Styles struct{}

func (Styles) FormatDate(t time.Time, f dateinput.Formatter, style Style) string {
	year, month, day := f.Date(t)

	switch style {
	case StyleShort:
		return fmt.Sprintf("%d/%d/%04d", int(month), day, year)
	case StyleMedium:
		return fmt.Sprintf("%s %d, %d", month.String()[:3], day, year)
	case StyleLong:
		return fmt.Sprintf("%s %d, %d", month, day, year)
	case StyleFull:
		return fmt.Sprintf("%s, %s %d, %d", f.Weekday(t), month, day, year)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	}
}

// StyleNames renders styles given by name, so configuration can carry
// them as plain strings. Unknown names render as iso.
type StyleNames struct{}

func (StyleNames) FormatDate(t time.Time, f dateinput.Formatter, name string) string {
	style, err := ParseStyle(name)
	if err != nil {
		style = StyleISO
	}
	return Styles{}.FormatDate(t, f, style)
}
