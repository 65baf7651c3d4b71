package storage

import "sync/atomic"

// Sequence hands out row identifiers. Implementations must never repeat a
// value for the lifetime of the store that owns them.
type Sequence interface {
	Next() int
}

// Counter is a monotonic Sequence starting at 1. The zero value is ready to use.
type Counter struct {
	last atomic.Int64
}

func (c *Counter) Next() int {
	return int(c.last.Add(1))
}
