package journal

import "sync/atomic"

// Clock is a monotonic logical clock for write ordering.
//
// Every recorded write is stamped with a strictly increasing seq from this
// clock. Wall-clock timestamps are never used for ordering: they race, they
// repeat, and replay must produce the identical order every time.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used when reopening a journal to resume past the highest recorded seq.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
