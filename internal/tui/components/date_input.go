package components

import (
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/parser"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dateInputDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	dateInputPreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40")).
				Italic(true)

	dateInputErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Italic(true)
)

// DateCommitMsg is sent when a date input loses focus with uncommitted text.
type DateCommitMsg struct {
	ID     string
	Commit dateinput.Commit
}

// DateInput is a single-line date entry field. Text typed while focused is
// kept as is until the field is blurred, then parsed and committed.
type DateInput[F any] struct {
	id        string
	input     *dateinput.Input[F]
	textInput textinput.Model
	preview   string
	error     string
	now       func() time.Time
}

// NewDateInput creates a blurred date input identified by id.
func NewDateInput[F any](id string, props dateinput.Props[F]) *DateInput[F] {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 30

	di := &DateInput[F]{
		id:        id,
		input:     dateinput.New(props),
		textInput: ti,
		now:       time.Now,
	}
	di.syncText()
	return di
}

// ID returns the identifier carried by DateCommitMsg.
func (di *DateInput[F]) ID() string {
	return di.id
}

// SetPlaceholder sets the text shown while the field is empty.
func (di *DateInput[F]) SetPlaceholder(placeholder string) {
	di.textInput.Placeholder = placeholder
}

// SetWidth sets the visible width of the text field.
func (di *DateInput[F]) SetWidth(width int) {
	di.textInput.Width = width
}

// SetNow replaces the clock used for the preview description.
func (di *DateInput[F]) SetNow(now func() time.Time) {
	di.now = now
}

// Value returns the current text of the field.
func (di *DateInput[F]) Value() string {
	return di.input.Text()
}

// State returns whether the field holds uncommitted text.
func (di *DateInput[F]) State() dateinput.State {
	return di.input.State()
}

// Focused reports whether the field has keyboard focus.
func (di *DateInput[F]) Focused() bool {
	return di.textInput.Focused()
}

// Props returns the props the field currently renders.
func (di *DateInput[F]) Props() dateinput.Props[F] {
	return di.input.Props()
}

// SetProps replaces the props. Uncommitted text is kept.
func (di *DateInput[F]) SetProps(props dateinput.Props[F]) {
	props.Editing = di.Focused()
	di.input.SetProps(props)
	di.syncText()
}

// SetValue replaces the externally owned date.
func (di *DateInput[F]) SetValue(value *time.Time) {
	di.input.SetValue(value)
	di.syncText()
}

// SetFormats replaces the edit and display formats.
func (di *DateInput[F]) SetFormats(editFormat, displayFormat F) {
	di.input.SetFormats(editFormat, displayFormat)
	di.syncText()
}

// Focus gives the field keyboard focus and switches it to the edit format.
// Disabled fields cannot be focused.
func (di *DateInput[F]) Focus() tea.Cmd {
	if di.input.Props().Disabled {
		return nil
	}
	di.input.SetEditing(true)
	di.syncText()
	di.textInput.CursorEnd()
	return di.textInput.Focus()
}

// Commit removes focus, commits uncommitted text and switches back to the
// display format. It reports false when nothing was typed since the last
// commit.
func (di *DateInput[F]) Commit() (dateinput.Commit, bool) {
	commit, ok := di.input.HandleBlur()
	di.input.SetEditing(false)
	di.textInput.Blur()
	di.syncText()
	di.preview = ""
	di.error = ""
	return commit, ok
}

// Blur is Commit for use in an Update loop. The returned command delivers
// the commit, if any.
func (di *DateInput[F]) Blur() tea.Cmd {
	commit, ok := di.Commit()
	if !ok {
		return nil
	}
	id := di.id
	return func() tea.Msg {
		return DateCommitMsg{ID: id, Commit: commit}
	}
}

// SetText replaces the text as if the user had typed it.
func (di *DateInput[F]) SetText(text string) {
	di.input.HandleChange(text)
	di.syncText()
	di.updatePreview()
}

// Reset discards uncommitted text without committing.
func (di *DateInput[F]) Reset() {
	di.input.Reset()
	di.syncText()
	di.preview = ""
	di.error = ""
}

// Update handles key input while focused. Read-only fields only accept
// cursor movement.
func (di *DateInput[F]) Update(msg tea.Msg) (*DateInput[F], tea.Cmd) {
	if !di.Focused() {
		return di, nil
	}

	props := di.input.Props()
	if key, ok := msg.(tea.KeyMsg); ok && (props.Disabled || props.ReadOnly) && !isCursorKey(key) {
		return di, nil
	}

	before := di.textInput.Value()
	var cmd tea.Cmd
	di.textInput, cmd = di.textInput.Update(msg)

	if after := di.textInput.Value(); after != before {
		di.input.HandleChange(after)
		di.updatePreview()
	}
	return di, cmd
}

func isCursorKey(key tea.KeyMsg) bool {
	switch key.Type {
	case tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	}
	return false
}

// syncText copies the machine's text into the text field.
func (di *DateInput[F]) syncText() {
	if text := di.input.Text(); di.textInput.Value() != text {
		di.textInput.SetValue(text)
	}
}

func (di *DateInput[F]) updatePreview() {
	di.preview = ""
	di.error = ""

	props := di.input.Props()
	text := di.input.Text()
	if text == "" || props.Parse == nil {
		return
	}

	date, err := props.Parse(text)
	if err != nil {
		di.error = err.Error()
		return
	}
	if dateinput.IsNullOrInvalid(date) {
		di.error = "not a date"
		return
	}

	shown := dateinput.DeriveText(date, false, props.EditFormat, props.DisplayFormat, props.Formatter, props.Localizer)
	di.preview = shown + " (" + parser.Describe(*date, di.now()) + ")"
}

// Preview returns the interpretation of the uncommitted text, if it parses.
func (di *DateInput[F]) Preview() string {
	return di.preview
}

// Error returns why the uncommitted text does not parse, if it doesn't.
func (di *DateInput[F]) Error() string {
	return di.error
}

// View renders the field followed by a preview or error line while focused.
func (di *DateInput[F]) View() string {
	if di.input.Props().Disabled {
		return dateInputDisabledStyle.Render(di.textInput.Value())
	}

	view := di.textInput.View()
	if !di.Focused() {
		return view
	}
	if di.error != "" {
		view += "\n" + dateInputErrorStyle.Render("✗ "+di.error)
	} else if di.preview != "" {
		view += "\n" + dateInputPreviewStyle.Render("→ "+di.preview)
	}
	return view
}
