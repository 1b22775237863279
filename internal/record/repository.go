package record

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MikeBiancalana/datefield/internal/storage"
)

// Repository handles record database operations
type Repository struct {
	db *storage.Database
}

// NewRepository creates a new record repository
func NewRepository(db *storage.Database) *Repository {
	return &Repository{db: db}
}

// Save saves or updates a record
func (r *Repository) Save(rec *Record) error {
	_, err := r.db.DB().Exec(`
		INSERT INTO records (id, label, value, value_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			value = excluded.value,
			value_at = excluded.value_at,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Label, encodeTime(rec.Value), encodeInstant(rec.Value), rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID
func (r *Repository) Get(id string) (*Record, error) {
	row := r.db.DB().QueryRow(`
		SELECT id, label, value, created_at, updated_at
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// List retrieves all records, soonest date first. Records without a date
// come last.
func (r *Repository) List() ([]Record, error) {
	rows, err := r.db.DB().Query(`
		SELECT id, label, value, created_at, updated_at
		FROM records
		ORDER BY value_at IS NULL, value_at, label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// Delete removes a record and its commit history
func (r *Repository) Delete(id string) error {
	res, err := r.db.DB().Exec("DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// SaveWithCommit updates a record and appends a history entry atomically
func (r *Repository) SaveWithCommit(rec *Record, entry *CommitEntry) error {
	tx, err := r.db.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE records SET value = ?, value_at = ?, updated_at = ? WHERE id = ?
	`, encodeTime(rec.Value), encodeInstant(rec.Value), rec.UpdatedAt.UnixNano(), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO commits (id, record_id, raw, value, rejected, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.RecordID, entry.Raw, encodeTime(entry.Value), entry.Rejected, entry.CommittedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save commit: %w", err)
	}

	return tx.Commit()
}

// Commits returns the commit history of a record, newest first
func (r *Repository) Commits(recordID string) ([]CommitEntry, error) {
	rows, err := r.db.DB().Query(`
		SELECT id, record_id, raw, value, rejected, committed_at
		FROM commits
		WHERE record_id = ?
		ORDER BY committed_at DESC
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}
	defer rows.Close()

	entries := make([]CommitEntry, 0)
	for rows.Next() {
		var e CommitEntry
		var value sql.NullString
		var committedAt int64
		if err := rows.Scan(&e.ID, &e.RecordID, &e.Raw, &value, &e.Rejected, &committedAt); err != nil {
			return nil, fmt.Errorf("failed to scan commit: %w", err)
		}
		if e.Value, err = decodeTime(value); err != nil {
			return nil, err
		}
		e.CommittedAt = time.Unix(0, committedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var value sql.NullString
	var createdAt, updatedAt int64

	if err := s.Scan(&rec.ID, &rec.Label, &value, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	v, err := decodeTime(value)
	if err != nil {
		return nil, err
	}
	rec.Value = v
	rec.CreatedAt = time.Unix(0, createdAt)
	rec.UpdatedAt = time.Unix(0, updatedAt)

	return &rec, nil
}

// Dates are stored as RFC 3339 text so they keep their offset. Text with
// different offsets does not sort by instant, so records also carry the
// instant as Unix nanoseconds.
func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func encodeInstant(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

func decodeTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored date %q: %w", s.String, err)
	}
	return &t, nil
}
