package advice

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

func TestInMemoryRefreshTracker_Supersede(t *testing.T) {
	tracker := NewInMemoryRefreshTracker()
	profileID := uuid.New()

	ctx1, cancel1 := context.WithCancel(context.Background())
	defer cancel1()
	tracker.Begin(profileID, 1, cancel1)

	if !tracker.IsRefreshing(profileID) {
		t.Error("expected refresh in flight")
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	tracker.Begin(profileID, 2, cancel2)

	if ctx1.Err() == nil {
		t.Error("expected the older refresh to be cancelled")
	}
	if ctx2.Err() != nil {
		t.Error("expected the newer refresh to keep running")
	}
	if tracker.IsCurrent(profileID, 1) {
		t.Error("expected refresh 1 to be superseded")
	}
	if !tracker.IsCurrent(profileID, 2) {
		t.Error("expected refresh 2 to be current")
	}

	// The older refresh finishing late must not clear the newer one.
	tracker.Finish(profileID, 1)
	if !tracker.IsRefreshing(profileID) {
		t.Error("expected refresh 2 still in flight")
	}

	tracker.Finish(profileID, 2)
	if tracker.IsRefreshing(profileID) {
		t.Error("expected no refresh in flight")
	}
}

func TestInMemoryRefreshTracker_LateBeginIsCancelled(t *testing.T) {
	tracker := NewInMemoryRefreshTracker()
	profileID := uuid.New()

	_, cancel5 := context.WithCancel(context.Background())
	defer cancel5()
	tracker.Begin(profileID, 5, cancel5)

	ctx3, cancel3 := context.WithCancel(context.Background())
	defer cancel3()
	tracker.Begin(profileID, 3, cancel3)

	if ctx3.Err() == nil {
		t.Error("expected an out-of-order refresh to be cancelled on begin")
	}
}

func TestInMemoryRefreshTracker_Failures(t *testing.T) {
	tracker := NewInMemoryRefreshTracker()
	profileID := uuid.New()

	if tracker.GetFailures(profileID) != nil {
		t.Error("expected no failures")
	}

	failure := domainerror.NewAnalyticsError(domainerror.ErrCodeProviderTimeout, "timeout", "gemini", nil)
	tracker.SetFailures(profileID, []*domainerror.AnalyticsError{failure})
	if got := tracker.GetFailures(profileID); len(got) != 1 || got[0] != failure {
		t.Errorf("expected stored failure, got %v", got)
	}

	tracker.SetFailures(profileID, nil)
	if tracker.GetFailures(profileID) != nil {
		t.Error("expected failures cleared")
	}
}

func TestInMemorySequenceIssuer_ConcurrentUnique(t *testing.T) {
	issuer := NewInMemorySequenceIssuer()
	profileID := uuid.New()

	const n = 100
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, _ := issuer.Next(context.Background(), profileID)
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique sequences, got %d", n, len(seen))
	}
	for i := int64(1); i <= n; i++ {
		if !seen[i] {
			t.Errorf("missing sequence %d", i)
		}
	}

	other, _ := issuer.Next(context.Background(), uuid.New())
	if other != 1 {
		t.Errorf("expected sequences to be per profile, got %d", other)
	}
}
