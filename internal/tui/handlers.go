package tui

import (
	"fmt"

	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/MikeBiancalana/datefield/internal/logger"
	"github.com/MikeBiancalana/datefield/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// Message Handlers
//
// Each handler follows the pattern
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	dims := CalculateDimensions(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.recordList.SetSize(dims.BodyWidth, dims.BodyHeight)

	modalWidth := msg.Width - 4
	if modalWidth > 70 {
		modalWidth = 70
	}
	m.datePicker.SetWidth(modalWidth)
	m.addForm.SetWidth(modalWidth)

	return m, nil
}

// handleRecordsLoaded replaces the list contents
func (m *Model) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	logger.Debug("tui: records loaded", "count", len(msg.records))
	m.loaded = true
	m.recordList.SetRecords(msg.records)
	if m.pendingSelect != "" {
		m.recordList.SelectID(m.pendingSelect)
		m.pendingSelect = ""
	}
	return m, nil
}

// handleRecordSaved reloads the list, keeping the saved record selected, and
// feeds the stored value back to an open picker for the same record
func (m *Model) handleRecordSaved(msg recordSavedMsg) (tea.Model, tea.Cmd) {
	rec := msg.record
	if m.datePicker.IsVisible() && m.datePicker.ID() == rec.ID {
		m.datePicker.SetValue(rec.Value)
	}

	if msg.rejected != "" {
		m.statusBar.SetError(fmt.Sprintf("%q is not a date; %s unchanged", msg.rejected, rec.Label))
	} else if rec.Value == nil {
		m.statusBar.SetMessage(fmt.Sprintf("%s: no date", rec.Label))
	} else {
		m.statusBar.SetMessage(fmt.Sprintf("%s: %s", rec.Label, m.bundle.Format(rec.Value, false)))
	}

	m.pendingSelect = rec.ID
	return m, tea.Batch(m.loadRecords(), clearStatusLater())
}

// handleRecordDeleted reloads the list after a delete
func (m *Model) handleRecordDeleted(msg recordDeletedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage("Deleted")
	return m, tea.Batch(m.loadRecords(), clearStatusLater())
}

// handleDatePicked stores a commit from the picker
func (m *Model) handleDatePicked(msg components.DatePickedMsg) (tea.Model, tea.Cmd) {
	if msg.ID == "" {
		return m, nil
	}
	return m, m.applyCommit(msg.ID, msg.Commit)
}

// handleFormSubmit creates a record from the add form
func (m *Model) handleFormSubmit(msg components.FormSubmitMsg) (tea.Model, tea.Cmd) {
	m.addForm.Hide()
	label := msg.Result.Values["label"]
	date := msg.Result.Dates["date"]
	return m, m.createRecord(label, date)
}

// handleConfigChanged applies a reloaded config. A broken config keeps the
// current formats.
func (m *Model) handleConfigChanged(msg configChangedMsg) (tea.Model, tea.Cmd) {
	next := m.waitForConfigChange()

	if msg.event.Err != nil {
		logger.Warn("tui: config reload failed", "path", msg.event.Path, "error", msg.event.Err)
		m.statusBar.SetError("Config not reloaded: " + msg.event.Err.Error())
		return m, next
	}

	bundle, err := localize.NewBundle(msg.event.Config, m.now)
	if err != nil {
		logger.Warn("tui: config rejected", "path", msg.event.Path, "error", err)
		m.statusBar.SetError("Config not reloaded: " + err.Error())
		return m, next
	}

	logger.Info("tui: config reloaded", "path", msg.event.Path)
	m.SetBundle(bundle)
	m.statusBar.SetMessage("Config reloaded")
	return m, tea.Batch(next, clearStatusLater())
}

// handleError handles error messages
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	logger.Error("tui: error", "error", msg.err)
	m.lastError = msg.err
	m.statusBar.SetError("Error: " + msg.err.Error())
	return m, nil
}

// forwardToModal hands non-key messages, like cursor blinks, to whichever
// modal is open
func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.datePicker.IsVisible():
		m.datePicker, cmd = m.datePicker.Update(msg)
	case m.addForm.IsVisible():
		m.addForm, cmd = m.addForm.Update(msg)
	}
	return m, cmd
}
