package perf

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Timer logs how long an operation took and warns when it ran past a
// threshold.
type Timer struct {
	name     string
	logger   *slog.Logger
	start    time.Time
	threshMs int64
}

func NewTimer(name string, logger *slog.Logger, threshMs int64) *Timer {
	return &Timer{
		name:     name,
		logger:   logger,
		start:    time.Now(),
		threshMs: threshMs,
	}
}

// Stop logs the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug(t.name, "duration_ms", elapsed.Milliseconds())
		if elapsed.Milliseconds() > t.threshMs {
			t.logger.Warn(t.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", t.threshMs)
		}
	}
	return elapsed
}

type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

func (s *Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Recorder aggregates durations of a repeated operation. Safe for
// concurrent use.
type Recorder struct {
	name      string
	logger    *slog.Logger
	count     int64
	totalDur  int64
	maxDur    int64
	slowOps   int64
	threshold time.Duration
}

func NewRecorder(name string, logger *slog.Logger, threshold time.Duration) *Recorder {
	return &Recorder{
		name:      name,
		logger:    logger,
		threshold: threshold,
	}
}

func (r *Recorder) Record(elapsed time.Duration) {
	elapsedNs := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, elapsedNs)

	for {
		maxDur := atomic.LoadInt64(&r.maxDur)
		if elapsedNs <= maxDur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.maxDur, maxDur, elapsedNs) {
			break
		}
	}

	if elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
	}
}

func (r *Recorder) Stats() Stats {
	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(atomic.LoadInt64(&r.totalDur)),
		MaxDuration:   time.Duration(atomic.LoadInt64(&r.maxDur)),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

// LogStats writes the aggregate at debug level. Nothing is logged before
// the first Record.
func (r *Recorder) LogStats() {
	stats := r.Stats()
	if stats.Count == 0 || r.logger == nil {
		return
	}
	r.logger.Debug(r.name+"_stats",
		"count", stats.Count,
		"total_ms", stats.TotalDuration.Milliseconds(),
		"avg_ms", stats.AvgDuration().Milliseconds(),
		"max_ms", stats.MaxDuration.Milliseconds(),
		"slow_ops", stats.SlowOps,
	)
}
