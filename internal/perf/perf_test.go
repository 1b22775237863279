package perf

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTimer_Stop(t *testing.T) {
	var buf bytes.Buffer
	timer := NewTimer("op", newTestLogger(&buf), 0)
	time.Sleep(2 * time.Millisecond)

	elapsed := timer.Stop()
	assert.GreaterOrEqual(t, elapsed, 2*time.Millisecond)
	assert.Contains(t, buf.String(), "msg=op")
	assert.Contains(t, buf.String(), "msg=op_slow")
}

func TestTimer_NilLogger(t *testing.T) {
	timer := NewTimer("op", nil, 100)
	assert.NotPanics(t, func() { timer.Stop() })
}

func TestRecorder(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder("commit", newTestLogger(&buf), 10*time.Millisecond)

	r.LogStats()
	assert.Empty(t, buf.String(), "nothing logged before the first Record")

	r.Record(4 * time.Millisecond)
	r.Record(20 * time.Millisecond)

	stats := r.Stats()
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 24*time.Millisecond, stats.TotalDuration)
	assert.Equal(t, 20*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 12*time.Millisecond, stats.AvgDuration())
	assert.Equal(t, int64(1), stats.SlowOps)

	r.LogStats()
	assert.Contains(t, buf.String(), "msg=commit_stats")
	assert.Contains(t, buf.String(), "count=2")
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder("commit", nil, time.Second)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(ms int) {
			defer wg.Done()
			r.Record(time.Duration(ms) * time.Millisecond)
		}(i)
	}
	wg.Wait()

	stats := r.Stats()
	assert.Equal(t, int64(50), stats.Count)
	assert.Equal(t, 50*time.Millisecond, stats.MaxDuration)
}

func TestStats_AvgDurationEmpty(t *testing.T) {
	var s Stats
	assert.Zero(t, s.AvgDuration())
}

func TestOpCounter(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)
	c := NewOpCounter("rejected")

	c.Log(logger)
	assert.Empty(t, buf.String())

	c.Inc()
	c.Inc()
	assert.Equal(t, int64(2), c.Value())

	c.Log(logger)
	assert.Contains(t, buf.String(), "msg=rejected count=2")

	c.Reset()
	assert.Zero(t, c.Value())
}
