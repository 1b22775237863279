package tui

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/MikeBiancalana/datefield/internal/record"
	"github.com/MikeBiancalana/datefield/internal/sync"
	"github.com/MikeBiancalana/datefield/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)
)

// Model represents the main TUI state.
//
// Commands capture every model value they need before returning their
// closure; the model may change before the closure runs.
type Model struct {
	service *record.Service
	bundle  *localize.Bundle
	watcher *sync.ConfigWatcher
	now     func() time.Time
	width   int
	height  int

	// Components
	recordList *components.RecordList
	datePicker *components.DatePicker
	addForm    *components.Form
	statusBar  *components.StatusBar
	keys       keyMap

	loaded           bool
	pendingSelect    string // record to select after the next load
	helpMode         bool
	confirmMode      bool
	confirmRecord    *record.Record
	lastError        error
	terminalTooSmall bool
}

// NewModel creates a new TUI model
func NewModel(service *record.Service, bundle *localize.Bundle) *Model {
	m := &Model{
		service:    service,
		bundle:     bundle,
		now:        time.Now,
		recordList: components.NewRecordList(nil, bundle),
		datePicker: components.NewDatePicker("Edit date", bundle),
		addForm:    newAddForm(bundle),
		statusBar:  components.NewStatusBar(),
		keys:       defaultKeyMap(),
	}
	return m
}

func newAddForm(bundle *localize.Bundle) *components.Form {
	form := components.NewForm("Add date", bundle)
	form.AddField(components.FormField{
		Label:       "Label",
		Key:         "label",
		Type:        components.FieldTypeText,
		Required:    true,
		Placeholder: "Passport expiry",
	}).AddField(components.FormField{
		Label: "Date",
		Key:   "date",
		Type:  components.FieldTypeDate,
	})
	return form
}

// SetWatcher makes the model reload formats whenever the config file
// changes.
func (m *Model) SetWatcher(w *sync.ConfigWatcher) {
	m.watcher = w
}

// SetNow replaces the clock used for relative descriptions.
func (m *Model) SetNow(now func() time.Time) {
	m.now = now
	m.recordList.SetNow(now)
	m.datePicker.SetNow(now)
	m.addForm.SetNow(now)
}

// SetBundle switches every date on screen to a new bundle.
func (m *Model) SetBundle(bundle *localize.Bundle) {
	m.bundle = bundle
	m.recordList.SetBundle(bundle)
	m.datePicker.SetBundle(bundle)
	m.addForm.SetBundle(bundle)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadRecords()}
	if m.watcher != nil {
		if err := m.watcher.Start(); err == nil {
			cmds = append(cmds, m.waitForConfigChange())
		} else {
			cmds = append(cmds, func() tea.Msg { return errMsg{fmt.Errorf("config watcher: %w", err)} })
		}
	}
	return tea.Batch(cmds...)
}

// Update dispatches messages to the handlers in handlers.go and keyboard.go
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)

	case recordSavedMsg:
		return m.handleRecordSaved(msg)

	case recordDeletedMsg:
		return m.handleRecordDeleted(msg)

	case components.DatePickedMsg:
		return m.handleDatePicked(msg)

	case components.DatePickCancelledMsg:
		return m, nil

	case components.FormSubmitMsg:
		return m.handleFormSubmit(msg)

	case components.FormCancelMsg:
		return m, nil

	case configChangedMsg:
		return m.handleConfigChanged(msg)

	case clearStatusMsg:
		m.statusBar.Clear()
		return m, nil

	case errMsg:
		return m.handleError(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		// cursor blinks and other component messages
		return m.forwardToModal(msg)
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
			m.width, m.height, MinTerminalWidth, MinTerminalHeight)
	}

	if !m.loaded {
		return "Loading..."
	}

	dims := CalculateDimensions(m.width, m.height)
	body := m.recordList.View()

	switch {
	case m.datePicker.IsVisible():
		body = m.overlay(m.datePicker.View(), dims)
	case m.addForm.IsVisible():
		body = m.overlay(m.addForm.View(), dims)
	case m.confirmMode && m.confirmRecord != nil:
		prompt := fmt.Sprintf("Delete %q? (y/n)", m.confirmRecord.Label)
		body = m.overlay(confirmStyle.Render(prompt), dims)
	case m.helpMode:
		body = m.overlay(helpStyle.Render(m.helpText()), dims)
	}

	header := titleStyle.Render(fmt.Sprintf("datefield (%d)", m.recordList.Len()))
	body = lipgloss.NewStyle().Height(dims.BodyHeight).MaxHeight(dims.BodyHeight).Render(body)

	return header + "\n" + body + "\n" + m.statusBar.View()
}

func (m *Model) overlay(view string, dims Dimensions) string {
	if dims.BodyWidth == 0 || dims.BodyHeight == 0 {
		return view
	}
	return lipgloss.Place(dims.BodyWidth, dims.BodyHeight, lipgloss.Center, lipgloss.Center, view)
}

func (m *Model) helpText() string {
	k := m.keys
	return helpLines(k.Add, k.Edit, k.Clear, k.Delete) +
		"j/k      move\n" +
		helpLines(k.Help, k.Quit) +
		"\nDates accept " + m.bundle.Hint() + "\n" +
		"and the configured display format."
}

// Messages

type recordsLoadedMsg struct {
	records []record.Record
}

type recordSavedMsg struct {
	record   *record.Record
	rejected string // raw text of a rejected commit
}

type recordDeletedMsg struct {
	id string
}

type configChangedMsg struct {
	event sync.ConfigChangeEvent
}

type errMsg struct {
	err error
}

func (e errMsg) Error() string {
	return e.err.Error()
}

type clearStatusMsg struct{}
