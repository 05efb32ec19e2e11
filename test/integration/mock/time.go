package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. It only moves when told to.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

// NewTimeAt returns a clock frozen at t.
func NewTimeAt(t time.Time) *Time {
	return &Time{current: t}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
}

func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = t.current.Add(d)
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
