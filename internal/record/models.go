package record

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/xid"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Record is a labelled date. Value is nil until a date is committed.
type Record struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Value     *time.Time `json:"value,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewRecord creates a new record
func NewRecord(label string, value *time.Time) *Record {
	now := time.Now()
	return &Record{
		ID:        xid.New().String(),
		Label:     strings.TrimSpace(label),
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CommitEntry is one commit made through a date field for a record.
// Rejected entries keep the text that failed to parse.
type CommitEntry struct {
	ID          string     `json:"id"`
	RecordID    string     `json:"record_id"`
	Raw         string     `json:"raw"`
	Value       *time.Time `json:"value,omitempty"`
	Rejected    bool       `json:"rejected"`
	CommittedAt time.Time  `json:"committed_at"`
}

// NewCommitEntry creates a history entry for recordID
func NewCommitEntry(recordID, raw string, value *time.Time, rejected bool) *CommitEntry {
	return &CommitEntry{
		ID:          xid.New().String(),
		RecordID:    recordID,
		Raw:         raw,
		Value:       value,
		Rejected:    rejected,
		CommittedAt: time.Now(),
	}
}
