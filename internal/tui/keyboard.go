package tui

import (
	"fmt"

	"github.com/MikeBiancalana/datefield/internal/logger"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the normal-mode keybindings.
type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Clear  key.Binding
	Delete key.Binding
	Escape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add a date"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit the selected date"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear the selected date"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete the selected record"),
		),
		Escape: key.NewBinding(key.WithKeys("esc")),
	}
}

// helpLines renders bindings as "key  description" rows.
func helpLines(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out += fmt.Sprintf("%-9s%s\n", h.Key, h.Desc)
	}
	return out
}

// Keyboard Handlers
//
// handleKeyPress routes keys by mode: an open modal gets every key, then
// confirmation and help, then normal mode.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	if m.datePicker.IsVisible() {
		var cmd tea.Cmd
		m.datePicker, cmd = m.datePicker.Update(msg)
		return m, cmd
	}

	if m.addForm.IsVisible() {
		var cmd tea.Cmd
		m.addForm, cmd = m.addForm.Update(msg)
		return m, cmd
	}

	if m.confirmMode {
		return m.handleConfirmKeys(msg)
	}

	if m.helpMode {
		switch msg.String() {
		case "?", "esc", "q":
			m.helpMode = false
		}
		return m, nil
	}

	return m.handleNormalModeKeys(msg)
}

// handleConfirmKeys handles keyboard input in confirmation mode
func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		rec := m.confirmRecord
		m.confirmMode = false
		m.confirmRecord = nil
		if rec == nil {
			return m, nil
		}
		return m, m.deleteRecord(rec.ID)

	case "n", "N", "esc":
		logger.Debug("tui: cancelled deletion")
		m.confirmMode = false
		m.confirmRecord = nil
		return m, nil
	}

	return m, nil
}

// handleNormalModeKeys handles keyboard input in normal mode
func (m *Model) handleNormalModeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()

	case key.Matches(msg, m.keys.Help):
		m.helpMode = true
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m, m.addForm.Show()

	case key.Matches(msg, m.keys.Edit):
		rec := m.selectedRecord()
		if rec == nil {
			return m, nil
		}
		return m, m.datePicker.Show(rec.ID, rec.Label, rec.Value)

	case key.Matches(msg, m.keys.Clear):
		rec := m.selectedRecord()
		if rec == nil || rec.Value == nil {
			return m, nil
		}
		return m, m.clearDate(rec.ID)

	case key.Matches(msg, m.keys.Delete):
		rec := m.selectedRecord()
		if rec == nil {
			return m, nil
		}
		m.confirmMode = true
		m.confirmRecord = rec
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.statusBar.Clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

// handleQuit stops the watcher and exits
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return m, tea.Quit
}
