package dateinput

import "time"

// State tells whether the text buffer mirrors the external value or holds
// unvalidated user input.
type State int

const (
	StateClean State = iota
	StateDirty
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Props are the inputs a field receives from its owner.
type Props[F any] struct {
	// Value is the externally owned date. Nil means no date.
	Value *time.Time

	// Editing selects EditFormat over DisplayFormat.
	Editing bool

	EditFormat    F
	DisplayFormat F

	Formatter Formatter
	Localizer Localizer[F]
	Parse     ParseFunc

	// OnChange is called once per commit, never per keystroke.
	OnChange ChangeFunc

	// OnBlur is called on every blur before any commit runs.
	OnBlur func()

	// Disabled and ReadOnly are carried for the rendered surface, which is
	// responsible for suppressing edits. The machine ignores them.
	Disabled bool
	ReadOnly bool
}

// Commit is the outcome of parsing the buffer on blur.
type Commit struct {
	// Date is the parsed date, nil when rejected or cleared.
	Date *time.Time

	// Raw is the buffer text at commit time.
	Raw string

	// Rejected is set when non-empty text did not parse to a usable date.
	Rejected bool

	// Err is the parser's error, if it returned one.
	Err error
}

// Cleared reports whether the user committed an empty field.
func (c Commit) Cleared() bool {
	return c.Raw == ""
}

// Input is the synchronisation state machine of a single date field. It is
// not safe for concurrent use; all calls are expected from one event loop.
type Input[F any] struct {
	props Props[F]
	text  string
	state State

	// memo is the canonical text the buffer was last reconciled against.
	// When stale is set the next reconcile overwrites the buffer no matter
	// what memo holds.
	memo  string
	stale bool
}

// New creates a clean field showing the canonical text of props.
func New[F any](props Props[F]) *Input[F] {
	in := &Input[F]{props: props}
	in.text = in.Canonical()
	in.memo = in.text
	return in
}

// Text returns the text currently shown.
func (in *Input[F]) Text() string {
	return in.text
}

// State returns the current state.
func (in *Input[F]) State() State {
	return in.state
}

// Dirty reports whether the buffer holds uncommitted user input.
func (in *Input[F]) Dirty() bool {
	return in.state == StateDirty
}

// Props returns the props the field was last reconciled with.
func (in *Input[F]) Props() Props[F] {
	return in.props
}

// Canonical derives the text for the current props.
func (in *Input[F]) Canonical() string {
	p := in.props
	return DeriveText(p.Value, p.Editing, p.EditFormat, p.DisplayFormat, p.Formatter, p.Localizer)
}

// SetProps replaces all props and reconciles.
func (in *Input[F]) SetProps(props Props[F]) {
	in.props = props
	in.reconcile()
}

// SetValue replaces the external value and reconciles.
func (in *Input[F]) SetValue(value *time.Time) {
	in.props.Value = value
	in.reconcile()
}

// SetEditing switches editing mode and reconciles. While dirty the typed
// text is left alone.
func (in *Input[F]) SetEditing(editing bool) {
	in.props.Editing = editing
	in.reconcile()
}

// SetFormats replaces both formats and reconciles.
func (in *Input[F]) SetFormats(editFormat, displayFormat F) {
	in.props.EditFormat = editFormat
	in.props.DisplayFormat = displayFormat
	in.reconcile()
}

// SetFormatter replaces the formatter and reconciles.
func (in *Input[F]) SetFormatter(formatter Formatter) {
	in.props.Formatter = formatter
	in.reconcile()
}

// SetLocalizer replaces the localizer and reconciles.
func (in *Input[F]) SetLocalizer(localizer Localizer[F]) {
	in.props.Localizer = localizer
	in.reconcile()
}

// SetParse replaces the parse function used by the next commit.
func (in *Input[F]) SetParse(parse ParseFunc) {
	in.props.Parse = parse
}

// SetOnChange replaces the commit callback.
func (in *Input[F]) SetOnChange(fn ChangeFunc) {
	in.props.OnChange = fn
}

// Reconcile re-derives the canonical text from the current props.
func (in *Input[F]) Reconcile() {
	in.reconcile()
}

// Reset throws away uncommitted input and shows the canonical text again.
// No commit is made.
func (in *Input[F]) Reset() {
	in.state = StateClean
	in.stale = true
	in.reconcile()
}

func (in *Input[F]) reconcile() {
	next := in.Canonical()
	if !in.stale && next == in.memo {
		return
	}
	in.memo = next
	in.stale = false
	if in.state == StateDirty {
		return
	}
	in.text = next
}

// HandleChange records a keystroke. The text is stored verbatim and is not
// parsed or reformatted.
func (in *Input[F]) HandleChange(text string) {
	in.state = StateDirty
	in.text = text
}

// HandleBlur runs the OnBlur passthrough and, if the buffer is dirty,
// commits it. It reports false when there was nothing to commit.
//
// After a commit the next reconcile always overwrites the buffer, so the
// value the owner stores from OnChange is what ends up on screen even when
// its text happens to equal the buffer left behind by the commit.
func (in *Input[F]) HandleBlur() (Commit, bool) {
	if in.props.OnBlur != nil {
		in.props.OnBlur()
	}
	if in.state != StateDirty {
		return Commit{}, false
	}

	c := in.parse(in.text)
	if c.Rejected {
		in.text = ""
	}
	in.state = StateClean
	in.stale = true

	if in.props.OnChange != nil {
		in.props.OnChange(c.Date, c.Raw)
	}
	return c, true
}

func (in *Input[F]) parse(raw string) Commit {
	c := Commit{Raw: raw}
	if in.props.Parse != nil {
		c.Date, c.Err = in.props.Parse(raw)
	}
	if raw == "" {
		return c
	}
	if c.Err != nil || IsNullOrInvalid(c.Date) {
		c.Rejected = true
		c.Date = nil
	}
	return c
}
