package components

import (
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/localize"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	datePickerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(1, 2)

	datePickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	datePickerCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	datePickerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Italic(true)

	datePickerHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// DatePickedMsg is sent when the picker commits typed text. Rejected
// commits are reported too; the picker stays open for another try.
type DatePickedMsg struct {
	ID     string
	Commit dateinput.Commit
}

// DatePickCancelledMsg is sent when the picker closes without a commit.
type DatePickCancelledMsg struct {
	ID string
}

// DatePicker is a modal that edits one date with a DateInput.
type DatePicker struct {
	bundle  *localize.Bundle
	field   *DateInput[string]
	visible bool
	title   string
	id      string
	label   string
	error   string
	width   int
	now     func() time.Time
}

// NewDatePicker creates a hidden date picker using bundle for formatting
// and parsing.
func NewDatePicker(title string, bundle *localize.Bundle) *DatePicker {
	dp := &DatePicker{
		bundle: bundle,
		title:  title,
		width:  40,
		now:    time.Now,
	}
	dp.field = dp.newField("", nil)
	return dp
}

func (dp *DatePicker) newField(id string, value *time.Time) *DateInput[string] {
	field := NewDateInput(id, dp.bundle.Props(value))
	field.SetPlaceholder(dp.bundle.Hint())
	field.SetNow(dp.now)
	field.SetWidth(dp.fieldWidth())
	return field
}

// SetNow replaces the clock used for previews.
func (dp *DatePicker) SetNow(now func() time.Time) {
	dp.now = now
	dp.field.SetNow(now)
}

// SetBundle switches formats and parsing. Text being typed is kept.
func (dp *DatePicker) SetBundle(bundle *localize.Bundle) {
	dp.bundle = bundle
	dp.field.SetProps(bundle.Props(dp.field.Props().Value))
	dp.field.SetPlaceholder(bundle.Hint())
}

// Show opens the picker for the date identified by id.
func (dp *DatePicker) Show(id, label string, value *time.Time) tea.Cmd {
	dp.visible = true
	dp.id = id
	dp.label = label
	dp.error = ""
	dp.field = dp.newField(id, value)
	return dp.field.Focus()
}

// Hide closes the picker, discarding uncommitted text.
func (dp *DatePicker) Hide() {
	dp.visible = false
	dp.error = ""
	dp.field.Reset()
	dp.field.Commit()
}

// IsVisible returns whether the date picker is visible
func (dp *DatePicker) IsVisible() bool {
	return dp.visible
}

// ID returns the identifier passed to Show.
func (dp *DatePicker) ID() string {
	return dp.id
}

// GetValue returns the current input text
func (dp *DatePicker) GetValue() string {
	return dp.field.Value()
}

// Error returns the message shown for the last rejected commit.
func (dp *DatePicker) Error() string {
	return dp.error
}

// SetWidth sets the width of the date picker
func (dp *DatePicker) SetWidth(width int) {
	dp.width = width
	dp.field.SetWidth(dp.fieldWidth())
}

func (dp *DatePicker) fieldWidth() int {
	if w := dp.width - 16; w > 20 {
		return w
	}
	return 20
}

// SetValue replaces the date the picker edits, for example after the owner
// stored a commit.
func (dp *DatePicker) SetValue(value *time.Time) {
	dp.field.SetValue(value)
}

// Update handles Bubble Tea messages
func (dp *DatePicker) Update(msg tea.Msg) (*DatePicker, tea.Cmd) {
	if !dp.visible {
		return dp, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			id := dp.id
			dp.Hide()
			return dp, func() tea.Msg { return DatePickCancelledMsg{ID: id} }
		case tea.KeyEnter:
			return dp.commit()
		}
	}

	var cmd tea.Cmd
	dp.field, cmd = dp.field.Update(msg)
	if dp.field.State() == dateinput.StateDirty {
		dp.error = ""
	}
	return dp, cmd
}

func (dp *DatePicker) commit() (*DatePicker, tea.Cmd) {
	id := dp.id
	c, ok := dp.field.Commit()
	if !ok {
		dp.Hide()
		return dp, func() tea.Msg { return DatePickCancelledMsg{ID: id} }
	}

	picked := func() tea.Msg { return DatePickedMsg{ID: id, Commit: c} }

	if c.Rejected {
		dp.error = "Invalid date: " + c.Raw
		if c.Err != nil {
			dp.error += " (" + c.Err.Error() + ")"
		}
		return dp, tea.Batch(picked, dp.field.Focus())
	}

	dp.visible = false
	dp.error = ""
	return dp, picked
}

// View renders the date picker
func (dp *DatePicker) View() string {
	if !dp.visible {
		return ""
	}

	var content string

	content += datePickerTitleStyle.Render(dp.title) + "\n"
	if dp.label != "" {
		content += dp.label + "\n"
	}
	content += "\n"

	if current := dp.bundle.Format(dp.field.Props().Value, false); current != "" {
		content += datePickerCurrentStyle.Render("Current: "+current) + "\n"
	}

	content += "Date: " + dp.field.View() + "\n"

	if dp.error != "" {
		content += datePickerErrorStyle.Render("✗ "+dp.error) + "\n"
	}

	content += "\n"
	content += datePickerHelpStyle.Render("ESC: cancel  ENTER: confirm  empty: clear")

	return datePickerBoxStyle.Render(content)
}
