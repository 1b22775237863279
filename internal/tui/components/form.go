package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormFieldType represents the type of form field
type FormFieldType int

const (
	FieldTypeText FormFieldType = iota
	FieldTypeDate
)

// FormField represents a single field in a form
type FormField struct {
	Label       string
	Key         string
	Type        FormFieldType
	Required    bool
	Placeholder string
	Validator   func(string) error

	textInput textinput.Model
	date      *DateInput[string]
	value     *time.Time // last accepted date
	rejected  string     // raw text of the last rejected commit
}

// FormResult represents the result of a submitted form
type FormResult struct {
	Values map[string]string
	Dates  map[string]*time.Time
}

// FormSubmitMsg is sent when the form is successfully submitted
type FormSubmitMsg struct {
	Result FormResult
}

// FormCancelMsg is sent when the form is cancelled
type FormCancelMsg struct{}

var (
	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)

	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	formLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Italic(true)

	formHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Form is a reusable multi-field form component. Date fields are owned by
// the form: each commit is stored and fed back to the field.
type Form struct {
	title      string
	bundle     *localize.Bundle
	fields     []FormField
	focusIndex int
	visible    bool
	errors     map[string]string
	width      int
	submitted  bool
	now        func() time.Time
}

// NewForm creates a new form with the given title. bundle formats and
// parses date fields; nil selects the default configuration.
func NewForm(title string, bundle *localize.Bundle) *Form {
	if bundle == nil {
		bundle = defaultBundle()
	}
	return &Form{
		title:      title,
		bundle:     bundle,
		fields:     make([]FormField, 0),
		focusIndex: 0,
		visible:    false,
		errors:     make(map[string]string),
		width:      60,
		submitted:  false,
		now:        time.Now,
	}
}

func defaultBundle() *localize.Bundle {
	b, err := localize.NewBundle(config.Default(), nil)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return b
}

// AddField adds a field to the form
func (f *Form) AddField(field FormField) *Form {
	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	ti.CharLimit = 500
	ti.Width = 50
	field.textInput = ti

	f.fields = append(f.fields, field)
	if field.Type == FieldTypeDate {
		f.resetDate(len(f.fields) - 1)
	}
	return f
}

// resetDate gives field i a fresh date input showing its stored value.
func (f *Form) resetDate(i int) {
	field := &f.fields[i]
	props := f.bundle.Props(field.value)
	props.OnChange = func(date *time.Time, raw string) {
		f.onDateChange(i, date, raw)
	}

	field.date = NewDateInput(field.Key, props)
	field.date.SetPlaceholder(f.datePlaceholder(*field))
	field.date.SetWidth(field.textInput.Width)
	field.date.SetNow(f.now)
}

// onDateChange stores a commit from date field i and hands the value back.
func (f *Form) onDateChange(i int, date *time.Time, raw string) {
	field := &f.fields[i]
	if date == nil && raw != "" {
		field.rejected = raw
		return
	}
	field.rejected = ""
	field.value = date
	field.date.SetValue(date)
}

// SetBundle switches date formats and parsing for every date field.
func (f *Form) SetBundle(bundle *localize.Bundle) {
	f.bundle = bundle
	for i := range f.fields {
		field := &f.fields[i]
		if field.Type != FieldTypeDate {
			continue
		}
		props := bundle.Props(field.value)
		props.OnChange = field.date.Props().OnChange
		field.date.SetProps(props)
		field.date.SetPlaceholder(f.datePlaceholder(*field))
	}
}

// datePlaceholder falls back to the bundle's hint for date fields without
// their own placeholder.
func (f *Form) datePlaceholder(field FormField) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	return f.bundle.Hint()
}

// SetNow replaces the clock used by date previews.
func (f *Form) SetNow(now func() time.Time) {
	f.now = now
	for i := range f.fields {
		if f.fields[i].date != nil {
			f.fields[i].date.SetNow(now)
		}
	}
}

// Show displays the form and focuses the first field
func (f *Form) Show() tea.Cmd {
	f.visible = true
	f.submitted = false
	f.errors = make(map[string]string)

	for i := range f.fields {
		f.fields[i].textInput.SetValue("")
		if f.fields[i].Type == FieldTypeDate {
			f.fields[i].value = nil
			f.fields[i].rejected = ""
			f.resetDate(i)
		}
	}

	f.focusIndex = 0
	return f.focusField(0)
}

// Hide hides the form
func (f *Form) Hide() {
	f.visible = false
	f.submitted = false
	for i := range f.fields {
		f.fields[i].textInput.Blur()
		if f.fields[i].date != nil {
			f.fields[i].date.Reset()
			f.fields[i].date.Commit()
		}
	}
}

// IsVisible returns whether the form is visible
func (f *Form) IsVisible() bool {
	return f.visible
}

// SetWidth sets the width of the form
func (f *Form) SetWidth(width int) {
	f.width = width
	fieldWidth := width - 20 // Account for borders and padding
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	for i := range f.fields {
		f.fields[i].textInput.Width = fieldWidth
		if f.fields[i].date != nil {
			f.fields[i].date.SetWidth(fieldWidth)
		}
	}
}

// GetValues returns the current text of every field
func (f *Form) GetValues() map[string]string {
	values := make(map[string]string)
	for _, field := range f.fields {
		if field.Type == FieldTypeDate {
			values[field.Key] = field.date.Value()
			continue
		}
		values[field.Key] = field.textInput.Value()
	}
	return values
}

// GetDates returns the committed value of every date field
func (f *Form) GetDates() map[string]*time.Time {
	dates := make(map[string]*time.Time)
	for _, field := range f.fields {
		if field.Type == FieldTypeDate {
			dates[field.Key] = field.value
		}
	}
	return dates
}

// SetValues sets form field text. Text given for a date field counts as
// typed and is committed when the field loses focus.
func (f *Form) SetValues(values map[string]string) {
	for i := range f.fields {
		val, ok := values[f.fields[i].Key]
		if !ok {
			continue
		}
		if f.fields[i].Type == FieldTypeDate {
			f.fields[i].date.SetText(val)
			continue
		}
		f.fields[i].textInput.SetValue(val)
	}
}

// SetDate stores value as the committed date of a date field.
func (f *Form) SetDate(key string, value *time.Time) error {
	for i := range f.fields {
		if f.fields[i].Key == key && f.fields[i].Type == FieldTypeDate {
			f.onDateChange(i, value, "")
			return nil
		}
	}
	return fmt.Errorf("field %s not found or not a date field", key)
}

// Update handles Bubble Tea messages
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if !f.visible {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			f.Hide()
			return f, func() tea.Msg {
				return FormCancelMsg{}
			}

		case tea.KeyEnter:
			return f.handleSubmit()

		case tea.KeyTab, tea.KeyShiftTab:
			return f.handleTabNavigation(msg.Type == tea.KeyShiftTab)
		}
	}

	if f.focusIndex < 0 || f.focusIndex >= len(f.fields) {
		return f, nil
	}

	var cmd tea.Cmd
	field := &f.fields[f.focusIndex]
	if field.Type == FieldTypeDate {
		field.date, cmd = field.date.Update(msg)
	} else {
		field.textInput, cmd = field.textInput.Update(msg)
	}
	return f, cmd
}

func (f *Form) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.fields) {
		return nil
	}
	if f.fields[i].Type == FieldTypeDate {
		// the field shows its stored value again
		f.fields[i].rejected = ""
		return f.fields[i].date.Focus()
	}
	return f.fields[i].textInput.Focus()
}

// blurField removes focus from field i, committing a date field.
func (f *Form) blurField(i int) {
	if i < 0 || i >= len(f.fields) {
		return
	}
	if f.fields[i].Type == FieldTypeDate {
		f.fields[i].date.Commit()
		return
	}
	f.fields[i].textInput.Blur()
}

// handleTabNavigation handles Tab/Shift+Tab navigation between fields
func (f *Form) handleTabNavigation(reverse bool) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}

	f.blurField(f.focusIndex)

	if reverse {
		f.focusIndex--
		if f.focusIndex < 0 {
			f.focusIndex = len(f.fields) - 1
		}
	} else {
		f.focusIndex++
		if f.focusIndex >= len(f.fields) {
			f.focusIndex = 0
		}
	}

	return f, f.focusField(f.focusIndex)
}

// handleSubmit commits every date field, validates and submits
func (f *Form) handleSubmit() (*Form, tea.Cmd) {
	f.blurField(f.focusIndex)
	for i := range f.fields {
		if f.fields[i].Type == FieldTypeDate {
			f.fields[i].date.Commit()
		}
	}

	f.errors = make(map[string]string)
	valid := true

	for _, field := range f.fields {
		if field.Type == FieldTypeDate {
			switch {
			case field.rejected != "":
				f.errors[field.Key] = fmt.Sprintf("%q is not a date", field.rejected)
				valid = false
			case field.Required && field.value == nil:
				f.errors[field.Key] = fmt.Sprintf("%s is required", field.Label)
				valid = false
			}
			continue
		}

		value := field.textInput.Value()

		if field.Required && strings.TrimSpace(value) == "" {
			f.errors[field.Key] = fmt.Sprintf("%s is required", field.Label)
			valid = false
			continue
		}

		if strings.TrimSpace(value) == "" {
			continue
		}

		if field.Validator != nil {
			if err := field.Validator(value); err != nil {
				f.errors[field.Key] = err.Error()
				valid = false
			}
		}
	}

	refocus := f.focusField(f.focusIndex)
	if !valid {
		return f, refocus
	}

	f.submitted = true
	result := FormResult{
		Values: f.GetValues(),
		Dates:  f.GetDates(),
	}

	return f, tea.Batch(refocus, func() tea.Msg {
		return FormSubmitMsg{Result: result}
	})
}

// View renders the form
func (f *Form) View() string {
	if !f.visible {
		return ""
	}

	var content strings.Builder

	content.WriteString(formTitleStyle.Render(f.title))
	content.WriteString("\n\n")

	for i, field := range f.fields {
		focused := i == f.focusIndex

		labelStyle := formLabelStyle
		if focused {
			labelStyle = formLabelFocusedStyle
		}

		label := field.Label
		if field.Required {
			label += " *"
		}
		content.WriteString(labelStyle.Render(label))
		content.WriteString("\n")

		if field.Type == FieldTypeDate {
			content.WriteString(field.date.View())
		} else {
			content.WriteString(field.textInput.View())
		}
		content.WriteString("\n")

		if err, hasErr := f.errors[field.Key]; hasErr {
			content.WriteString(formErrorStyle.Render("✗ " + err))
			content.WriteString("\n")
		}

		if i < len(f.fields)-1 {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(formHelpStyle.Render("TAB: next field  SHIFT+TAB: previous field  ENTER: submit  ESC: cancel"))

	return formBoxStyle.Render(content.String())
}

// ParsedDateValue returns the committed date of a date field. Nil means the
// field is empty.
func (f *Form) ParsedDateValue(key string) (*time.Time, error) {
	for _, field := range f.fields {
		if field.Key == key && field.Type == FieldTypeDate {
			if field.rejected != "" {
				return nil, fmt.Errorf("%q is not a date", field.rejected)
			}
			return field.value, nil
		}
	}
	return nil, fmt.Errorf("field %s not found or not a date field", key)
}
