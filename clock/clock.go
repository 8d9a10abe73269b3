// Package clock abstracts the monotonic time source used for time-gated
// status transitions.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current time as a Unix timestamp in seconds.
type Clock interface {
	Now() int64
}

// System reads the wall clock.
type System struct{}

func (System) Now() int64 { return time.Now().Unix() }

// Manual is a settable clock for tests.
type Manual struct {
	mu  sync.Mutex
	now int64
}

func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Set(now int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += int64(d / time.Second)
}
