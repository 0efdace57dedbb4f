package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/usecase/alert"
	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
)

type staticProfiles struct {
	ids []uuid.UUID
	err error
}

func (p staticProfiles) ListProfiles(context.Context) ([]uuid.UUID, error) {
	return p.ids, p.err
}

type fakeRecomputer struct {
	mu      sync.Mutex
	calls   []uuid.UUID
	failFor map[uuid.UUID]bool
	block   chan struct{}
}

func (r *fakeRecomputer) Execute(_ context.Context, input analytics.RecomputeInput) (*analytics.RecomputeOutput, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, input.ProfileID)
	if r.failFor[input.ProfileID] {
		return nil, errors.New("store unavailable")
	}
	return &analytics.RecomputeOutput{State: analytics.DerivedState{ProfileID: input.ProfileID}}, nil
}

type fakeDigest struct {
	states []uuid.UUID
	sent   bool
}

func (d *fakeDigest) Execute(_ context.Context, input alert.SendDigestInput) (*alert.SendDigestOutput, error) {
	d.states = append(d.states, input.State.ProfileID)
	return &alert.SendDigestOutput{Sent: d.sent}, nil
}

func TestRunOnce(t *testing.T) {
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	t.Run("recomputes every profile and mails each digest", func(t *testing.T) {
		recomputer := &fakeRecomputer{failFor: map[uuid.UUID]bool{second: true}}
		digest := &fakeDigest{sent: true}
		s := NewScheduler(staticProfiles{ids: []uuid.UUID{first, second, third}}, recomputer, digest, Config{})

		result, err := s.RunOnce(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Profiles != 3 || result.Recomputed != 2 || result.Failures != 1 || result.DigestsSent != 2 {
			t.Errorf("unexpected result %+v", result)
		}
		if len(digest.states) != 2 || digest.states[0] != first || digest.states[1] != third {
			t.Errorf("expected digests for the recomputed profiles, got %v", digest.states)
		}
	})

	t.Run("digest is optional", func(t *testing.T) {
		s := NewScheduler(staticProfiles{ids: []uuid.UUID{first}}, &fakeRecomputer{}, nil, Config{})
		result, err := s.RunOnce(context.Background())
		if err != nil || result.Recomputed != 1 || result.DigestsSent != 0 {
			t.Errorf("unexpected result %+v (%v)", result, err)
		}
	})

	t.Run("listing failure", func(t *testing.T) {
		s := NewScheduler(staticProfiles{err: errors.New("db down")}, &fakeRecomputer{}, nil, Config{})
		if _, err := s.RunOnce(context.Background()); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("overlapping pass is skipped", func(t *testing.T) {
		recomputer := &fakeRecomputer{block: make(chan struct{})}
		s := NewScheduler(staticProfiles{ids: []uuid.UUID{first}}, recomputer, nil, Config{})

		done := make(chan *RunResult)
		go func() {
			result, _ := s.RunOnce(context.Background())
			done <- result
		}()

		deadline := time.Now().Add(time.Second)
		for !s.running.Load() && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}

		skipped, err := s.RunOnce(context.Background())
		if err != nil || skipped.Profiles != 0 {
			t.Errorf("expected the second pass to be skipped, got %+v (%v)", skipped, err)
		}

		close(recomputer.block)
		if first := <-done; first.Recomputed != 1 {
			t.Errorf("expected first pass to finish, got %+v", first)
		}
	})
}

func TestStart(t *testing.T) {
	if err := NewScheduler(staticProfiles{}, &fakeRecomputer{}, nil, Config{Spec: "not a spec"}).Start(); err == nil {
		t.Error("expected invalid spec to be rejected")
	}

	s := NewScheduler(staticProfiles{}, &fakeRecomputer{}, nil, Config{})
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
