package tui

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/logger"
	"github.com/MikeBiancalana/datefield/internal/perf"
	"github.com/MikeBiancalana/datefield/internal/record"
	tea "github.com/charmbracelet/bubbletea"
)

// Command Builders
//
// These methods create tea.Cmd functions for async operations. Every value
// a closure needs is captured before the closure is returned.

const statusTimeout = 3 * time.Second

// loadRecords loads all records from the service
func (m *Model) loadRecords() tea.Cmd {
	capturedService := m.service

	return func() tea.Msg {
		timer := perf.NewTimer("tui.loadRecords", nil, 100)
		defer timer.Stop()

		if capturedService == nil {
			return errMsg{fmt.Errorf("record service not available")}
		}

		records, err := capturedService.List()
		if err != nil {
			logger.Debug("tui: failed to load records", "error", err)
			return errMsg{err}
		}
		return recordsLoadedMsg{records: records}
	}
}

// applyCommit stores a date field commit for a record
func (m *Model) applyCommit(id string, c dateinput.Commit) tea.Cmd {
	capturedService := m.service

	return func() tea.Msg {
		logger.Debug("tui: applying commit", "record_id", id, "raw", c.Raw, "rejected", c.Rejected)
		rec, err := capturedService.ApplyCommit(id, c)
		if err != nil {
			return errMsg{err}
		}
		msg := recordSavedMsg{record: rec}
		if c.Rejected {
			msg.rejected = c.Raw
		}
		return msg
	}
}

// clearDate commits an empty field for a record
func (m *Model) clearDate(id string) tea.Cmd {
	return m.applyCommit(id, dateinput.Commit{})
}

// createRecord adds a record
func (m *Model) createRecord(label string, value *time.Time) tea.Cmd {
	capturedService := m.service

	return func() tea.Msg {
		rec, err := capturedService.Create(label, value)
		if err != nil {
			return errMsg{err}
		}
		return recordSavedMsg{record: rec}
	}
}

// deleteRecord removes a record
func (m *Model) deleteRecord(id string) tea.Cmd {
	capturedService := m.service

	return func() tea.Msg {
		if err := capturedService.Delete(id); err != nil {
			return errMsg{err}
		}
		return recordDeletedMsg{id: id}
	}
}

// waitForConfigChange blocks on the watcher until the config file changes.
// It yields nothing once the watcher is stopped.
func (m *Model) waitForConfigChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	capturedWatcher := m.watcher

	return func() tea.Msg {
		event, ok := <-capturedWatcher.Changes()
		if !ok {
			return nil
		}
		return configChangedMsg{event: event}
	}
}

// clearStatusLater resets the status bar after statusTimeout
func clearStatusLater() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// selectedRecord returns the record under the cursor
func (m *Model) selectedRecord() *record.Record {
	return m.recordList.Selected()
}
