package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/localize"
	"github.com/MikeBiancalana/datefield/internal/parser"
	"github.com/MikeBiancalana/datefield/internal/record"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	recordLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	recordDateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	recordUndatedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)

	recordWhenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	recordSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15"))

	recordEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// RecordItem is one record in the list. Implements list.Item.
type RecordItem struct {
	record record.Record
	date   string
	when   string
}

// FilterValue implements list.Item
func (i RecordItem) FilterValue() string {
	return i.record.Label
}

// Record returns the record behind the item.
func (i RecordItem) Record() record.Record {
	return i.record
}

// RecordList shows records with their dates in display format.
type RecordList struct {
	list   list.Model
	bundle *localize.Bundle
	now    func() time.Time
	width  int
}

// NewRecordList creates a list of records formatted with bundle.
func NewRecordList(records []record.Record, bundle *localize.Bundle) *RecordList {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	rl := &RecordList{
		list:   l,
		bundle: bundle,
		now:    time.Now,
	}
	rl.SetRecords(records)
	return rl
}

// SetNow replaces the clock used for relative descriptions.
func (rl *RecordList) SetNow(now func() time.Time) {
	rl.now = now
	rl.refresh()
}

// SetBundle re-renders every date with a new bundle.
func (rl *RecordList) SetBundle(bundle *localize.Bundle) {
	rl.bundle = bundle
	rl.refresh()
}

// SetRecords replaces the records, keeping the selection on the same
// record where possible.
func (rl *RecordList) SetRecords(records []record.Record) {
	selected := ""
	if rec := rl.Selected(); rec != nil {
		selected = rec.ID
	}

	items := make([]list.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, rl.newItem(rec))
	}
	rl.list.SetItems(items)

	if selected != "" {
		rl.SelectID(selected)
	}
}

func (rl *RecordList) refresh() {
	items := rl.list.Items()
	for i, it := range items {
		if ri, ok := it.(RecordItem); ok {
			items[i] = rl.newItem(ri.record)
		}
	}
	rl.list.SetItems(items)
}

func (rl *RecordList) newItem(rec record.Record) RecordItem {
	item := RecordItem{record: rec}
	if rec.Value != nil {
		item.date = rl.bundle.Format(rec.Value, false)
		item.when = parser.Describe(*rec.Value, rl.now())
	}
	return item
}

// Len returns the number of records shown.
func (rl *RecordList) Len() int {
	return len(rl.list.Items())
}

// Selected returns the selected record, or nil when the list is empty.
func (rl *RecordList) Selected() *record.Record {
	item, ok := rl.list.SelectedItem().(RecordItem)
	if !ok {
		return nil
	}
	rec := item.record
	return &rec
}

// SelectID moves the selection to the record with id. It reports whether
// the record was found.
func (rl *RecordList) SelectID(id string) bool {
	for i, it := range rl.list.Items() {
		if ri, ok := it.(RecordItem); ok && ri.record.ID == id {
			rl.list.Select(i)
			return true
		}
	}
	return false
}

// SetSize updates the dimensions of the list
func (rl *RecordList) SetSize(width, height int) {
	rl.width = width
	rl.list.SetSize(width, height)
}

// Update handles Bubble Tea messages
func (rl *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	var cmd tea.Cmd
	rl.list, cmd = rl.list.Update(msg)
	return rl, cmd
}

// View renders the list
func (rl *RecordList) View() string {
	items := rl.list.Items()
	if len(items) == 0 {
		return recordEmptyStyle.Render("No dates yet. Press a to add one.")
	}

	var sb strings.Builder
	for i, it := range items {
		item, ok := it.(RecordItem)
		if !ok {
			continue
		}

		line := rl.renderItem(item)
		if i == rl.list.Index() {
			line = recordSelectedStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (rl *RecordList) renderItem(item RecordItem) string {
	label := recordLabelStyle.Render(item.record.Label)
	if item.date == "" {
		return fmt.Sprintf("%s  %s", label, recordUndatedStyle.Render("no date"))
	}
	return fmt.Sprintf("%s  %s  %s", label, recordDateStyle.Render(item.date), recordWhenStyle.Render(item.when))
}
