package perf

import (
	"log/slog"
	"sync/atomic"
)

// OpCounter counts occurrences of an event, such as rejected commits.
// Safe for concurrent use.
type OpCounter struct {
	name  string
	value int64
}

func NewOpCounter(name string) *OpCounter {
	return &OpCounter{name: name}
}

func (c *OpCounter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

func (c *OpCounter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

func (c *OpCounter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Log writes the count at debug level if it is non-zero.
func (c *OpCounter) Log(logger *slog.Logger) {
	if n := c.Value(); n > 0 && logger != nil {
		logger.Debug(c.name, "count", n)
	}
}
