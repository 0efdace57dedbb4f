// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

// RefreshTracker follows in-flight refreshes so a newer one can cancel and supersede an older one.
type RefreshTracker interface {
	// Begin registers a refresh and cancels any older in-flight refresh of the profile.
	Begin(profileID uuid.UUID, sequence int64, cancel context.CancelFunc)
	// Finish clears the refresh if it is still the registered one.
	Finish(profileID uuid.UUID, sequence int64)
	// IsCurrent reports whether no newer refresh has begun.
	IsCurrent(profileID uuid.UUID, sequence int64) bool
	// IsRefreshing reports whether a refresh is in flight.
	IsRefreshing(profileID uuid.UUID) bool

	SetFailures(profileID uuid.UUID, failures []*domainerror.AnalyticsError)
	GetFailures(profileID uuid.UUID) []*domainerror.AnalyticsError
}

type inFlight struct {
	sequence int64
	cancel   context.CancelFunc
}

// InMemoryRefreshTracker is an in-process RefreshTracker.
type InMemoryRefreshTracker struct {
	mu       sync.RWMutex
	running  map[uuid.UUID]inFlight
	latest   map[uuid.UUID]int64
	failures map[uuid.UUID][]*domainerror.AnalyticsError
}

// NewInMemoryRefreshTracker creates a new in-memory refresh tracker.
func NewInMemoryRefreshTracker() *InMemoryRefreshTracker {
	return &InMemoryRefreshTracker{
		running:  make(map[uuid.UUID]inFlight),
		latest:   make(map[uuid.UUID]int64),
		failures: make(map[uuid.UUID][]*domainerror.AnalyticsError),
	}
}

// Begin registers a refresh. An older in-flight refresh is cancelled; a refresh older than
// the latest one is cancelled immediately.
func (t *InMemoryRefreshTracker) Begin(profileID uuid.UUID, sequence int64, cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sequence < t.latest[profileID] {
		cancel()
		return
	}

	if prev, ok := t.running[profileID]; ok && prev.sequence < sequence {
		prev.cancel()
	}
	t.running[profileID] = inFlight{sequence: sequence, cancel: cancel}
	t.latest[profileID] = sequence
}

// Finish clears the in-flight entry when it belongs to sequence.
func (t *InMemoryRefreshTracker) Finish(profileID uuid.UUID, sequence int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.running[profileID]; ok && cur.sequence == sequence {
		delete(t.running, profileID)
	}
}

// IsCurrent reports whether sequence is the newest refresh seen for the profile.
func (t *InMemoryRefreshTracker) IsCurrent(profileID uuid.UUID, sequence int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return sequence >= t.latest[profileID]
}

// IsRefreshing checks if a refresh is running for the profile.
func (t *InMemoryRefreshTracker) IsRefreshing(profileID uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.running[profileID]
	return ok
}

// SetFailures stores the provider failures of the last completed refresh.
func (t *InMemoryRefreshTracker) SetFailures(profileID uuid.UUID, failures []*domainerror.AnalyticsError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(failures) == 0 {
		delete(t.failures, profileID)
		return
	}
	t.failures[profileID] = failures
}

// GetFailures returns the provider failures of the last completed refresh.
func (t *InMemoryRefreshTracker) GetFailures(profileID uuid.UUID) []*domainerror.AnalyticsError {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.failures[profileID]
}

// InMemorySequenceIssuer issues per-profile sequences within one process.
type InMemorySequenceIssuer struct {
	mu   sync.Mutex
	next map[uuid.UUID]int64
}

// NewInMemorySequenceIssuer creates a new in-memory sequence issuer.
func NewInMemorySequenceIssuer() *InMemorySequenceIssuer {
	return &InMemorySequenceIssuer{next: make(map[uuid.UUID]int64)}
}

// Next returns the next sequence for the profile, starting at 1.
func (s *InMemorySequenceIssuer) Next(_ context.Context, profileID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[profileID]++
	return s.next[profileID], nil
}
