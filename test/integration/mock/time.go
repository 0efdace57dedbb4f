package mock

import (
	"sync"
	"time"
)

// Time is a clock that starts at a chosen instant and then advances with wall time.
type Time struct {
	mu        sync.RWMutex
	start     time.Time
	updatedAt time.Time
}

func NewTime() *Time {
	now := time.Now()
	return &Time{start: now, updatedAt: now}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = currentTime
	t.updatedAt = time.Now()
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.start.Add(time.Since(t.updatedAt))
}
