package storage

import (
	"path/filepath"
	"testing"
)

func TestNewDatabase_SchemaInitialization(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"records", "commits"} {
		var name string
		err = db.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Fatalf("%s table does not exist: %v", table, err)
		}
	}
}

func TestCommits_ForeignKeyConstraint(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	_, err = db.DB().Exec(`
		INSERT INTO commits (id, record_id, raw, rejected, committed_at)
		VALUES ('c-1', 'missing', 'tm', 0, 0)
	`)
	if err == nil {
		t.Fatal("expected foreign key constraint violation, got nil error")
	}
}

func TestCommits_CascadeDelete(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := db.DB().Exec(`
		INSERT INTO records (id, label, value, created_at, updated_at)
		VALUES ('r-1', 'passport', '2030-01-01', 0, 0)
	`); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
	if _, err := db.DB().Exec(`
		INSERT INTO commits (id, record_id, raw, value, rejected, committed_at)
		VALUES ('c-1', 'r-1', '2030-01-01', '2030-01-01', 0, 0)
	`); err != nil {
		t.Fatalf("failed to create commit: %v", err)
	}

	if _, err := db.DB().Exec("DELETE FROM records WHERE id = 'r-1'"); err != nil {
		t.Fatalf("failed to delete record: %v", err)
	}

	var count int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM commits").Scan(&count); err != nil {
		t.Fatalf("failed to count commits: %v", err)
	}
	if count != 0 {
		t.Errorf("expected commits to cascade, %d left", count)
	}
}

func TestNewDatabase_ReopensFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if _, err := db.DB().Exec(`
		INSERT INTO records (id, label, created_at, updated_at)
		VALUES ('r-1', 'no date yet', 0, 0)
	`); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	db, err = NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var label string
	if err := db.DB().QueryRow("SELECT label FROM records WHERE id = 'r-1'").Scan(&label); err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if label != "no date yet" {
		t.Errorf("expected label 'no date yet', got %q", label)
	}
}

func TestNewDatabase_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "datefield.db")
	db, err := NewDatabase(path)
	if err == nil {
		db.Close()
		t.Fatal("expected an error for a database in a missing directory")
	}
	if db != nil {
		t.Fatal("expected no database on error")
	}
}
