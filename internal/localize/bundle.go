package localize

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/parser"
)

// Bundle holds everything a date field needs to format and parse text,
// built from one configuration.
type Bundle struct {
	Syntax        config.Syntax
	Formatter     dateinput.Formatter
	Localizer     dateinput.Localizer[string]
	EditFormat    string
	DisplayFormat string
	Parse         dateinput.ParseFunc
	// Relative reports whether shortcuts like tm and +3d are accepted.
	Relative bool

	example string
}

// relativeHint lists the shortcuts relative parsing accepts.
const relativeHint = "t, tm, y, mon-sun, +3d, -2w"

// NewBundle builds a bundle from cfg. now feeds relative date parsing; nil
// means time.Now.
func NewBundle(cfg *config.Config, now func() time.Time) (*Bundle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	loc, err := cfg.LoadLocation()
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Syntax:        cfg.Syntax,
		Formatter:     NewCalendar(loc),
		EditFormat:    cfg.EditFormat,
		DisplayFormat: cfg.DisplayFormat,
		Relative:      cfg.Parse.Relative,
	}

	var parsers []dateinput.ParseFunc
	inLoc := func() time.Time { return now().In(loc) }
	if cfg.Parse.Relative {
		parsers = append(parsers, parser.Relative(inLoc))
	}

	switch cfg.Syntax {
	case config.SyntaxLayout:
		b.Localizer = Layout{}
		parsers = append(parsers, parser.Layouts(loc, cfg.EditFormat, cfg.DisplayFormat))
	case config.SyntaxStrftime:
		b.Localizer = Strftime{}
		parsers = append(parsers, parser.Strftime(loc, cfg.EditFormat), parser.Strftime(loc, cfg.DisplayFormat))
	case config.SyntaxStyle:
		edit, err := ParseStyle(cfg.EditFormat)
		if err != nil {
			return nil, fmt.Errorf("edit_format: %w", err)
		}
		display, err := ParseStyle(cfg.DisplayFormat)
		if err != nil {
			return nil, fmt.Errorf("display_format: %w", err)
		}
		b.Localizer = StyleNames{}
		parsers = append(parsers, parser.Layouts(loc, edit.Layout(), display.Layout()))
	}

	if len(cfg.Parse.Layouts) > 0 {
		parsers = append(parsers, parser.Layouts(loc, cfg.Parse.Layouts...))
	}

	sample := time.Date(2026, time.December, 31, 0, 0, 0, 0, loc)
	b.example = b.Format(&sample, true)

	b.Parse = parser.Chain(parsers...)
	if cfg.Parse.RejectPast {
		b.Parse = parser.NotBefore(b.Parse, inLoc)
	}
	return b, nil
}

// Format returns the canonical text of value in the bundle's formats.
func (b *Bundle) Format(value *time.Time, editing bool) string {
	return dateinput.DeriveText(value, editing, b.EditFormat, b.DisplayFormat, b.Formatter, b.Localizer)
}

// Hint describes what a field accepts: the edit format by example, then the
// relative shortcuts when they are enabled.
func (b *Bundle) Hint() string {
	if !b.Relative {
		return b.example
	}
	return b.example + ", " + relativeHint
}

// Props returns field props for value wired to the bundle.
func (b *Bundle) Props(value *time.Time) dateinput.Props[string] {
	return dateinput.Props[string]{
		Value:         value,
		EditFormat:    b.EditFormat,
		DisplayFormat: b.DisplayFormat,
		Formatter:     b.Formatter,
		Localizer:     b.Localizer,
		Parse:         b.Parse,
	}
}
