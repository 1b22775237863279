package record

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeBiancalana/datefield/internal/dateinput"
	"github.com/MikeBiancalana/datefield/internal/perf"
)

// Service handles record business logic
type Service struct {
	repo     *Repository
	logger   *slog.Logger
	commits  *perf.Recorder
	rejected *perf.OpCounter
}

// NewService creates a new record service
func NewService(repo *Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		commits:  perf.NewRecorder("Service.ApplyCommit", logger, 50*time.Millisecond),
		rejected: perf.NewOpCounter("Service.ApplyCommit_rejected"),
	}
}

// Create creates a new record. value may be nil.
func (s *Service) Create(label string, value *time.Time) (*Record, error) {
	if strings.TrimSpace(label) == "" {
		return nil, fmt.Errorf("label is required")
	}
	if dateinput.IsNullOrInvalid(value) {
		value = nil
	}

	rec := NewRecord(label, value)
	if err := s.repo.Save(rec); err != nil {
		s.logger.Error("Create", "error", err, "label", rec.Label)
		return nil, err
	}

	s.logger.Info("Create", "record_id", rec.ID, "label", rec.Label)
	return rec, nil
}

// Get retrieves a record by ID
func (s *Service) Get(id string) (*Record, error) {
	return s.repo.Get(id)
}

// List returns all records
func (s *Service) List() ([]Record, error) {
	timer := perf.NewTimer("Service.List", s.logger, 50)
	defer timer.Stop()

	return s.repo.List()
}

// Rename changes a record's label
func (s *Service) Rename(id, label string) (*Record, error) {
	if strings.TrimSpace(label) == "" {
		return nil, fmt.Errorf("label is required")
	}

	rec, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	rec.Label = strings.TrimSpace(label)
	rec.UpdatedAt = time.Now()
	if err := s.repo.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Delete", "error", err, "record_id", id)
		return err
	}
	s.logger.Info("Delete", "record_id", id)
	return nil
}

// ApplyCommit stores the outcome of a date field commit. Accepted and
// cleared commits replace the record's value; rejected commits leave it
// unchanged. Every commit is appended to the history.
func (s *Service) ApplyCommit(id string, c dateinput.Commit) (*Record, error) {
	timer := perf.NewTimer("Service.ApplyCommit", s.logger, 50)
	defer func() { s.commits.Record(timer.Stop()) }()

	rec, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}

	value := c.Date
	if dateinput.IsNullOrInvalid(value) {
		value = nil
	}

	if c.Rejected {
		s.rejected.Inc()
	} else {
		rec.Value = value
		rec.UpdatedAt = time.Now()
	}

	entry := NewCommitEntry(rec.ID, c.Raw, value, c.Rejected)
	if err := s.repo.SaveWithCommit(rec, entry); err != nil {
		s.logger.Error("ApplyCommit", "error", err, "record_id", id)
		return nil, err
	}

	s.logger.Debug("ApplyCommit", "record_id", id, "raw", c.Raw, "rejected", c.Rejected, "cleared", value == nil)
	return rec, nil
}

// History returns the commits made for a record, newest first
func (s *Service) History(id string) ([]CommitEntry, error) {
	if _, err := s.repo.Get(id); err != nil {
		return nil, err
	}
	return s.repo.Commits(id)
}

// RejectedCommits returns how many commits were rejected since the service
// was created.
func (s *Service) RejectedCommits() int64 {
	return s.rejected.Value()
}

// Close logs the aggregated commit timings and the rejected commit count.
func (s *Service) Close() {
	s.commits.LogStats()
	s.rejected.Log(s.logger)
}
