// Package scheduler runs the nightly recompute and alert digest pass.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/finance-tracker/analytics/internal/application/usecase/alert"
	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
)

// DefaultSpec runs the pass every night at 03:00.
const DefaultSpec = "0 3 * * *"

// ProfileLister enumerates the profiles a pass covers.
type ProfileLister interface {
	ListProfiles(ctx context.Context) ([]uuid.UUID, error)
}

// Recomputer recomputes and stores the derived state of one profile.
type Recomputer interface {
	Execute(ctx context.Context, input analytics.RecomputeInput) (*analytics.RecomputeOutput, error)
}

// DigestSender mails the alert digest built from derived state.
type DigestSender interface {
	Execute(ctx context.Context, input alert.SendDigestInput) (*alert.SendDigestOutput, error)
}

// Config holds configuration for the scheduler.
type Config struct {
	Spec       string
	RunTimeout time.Duration // Bounds one profile; zero means no bound
}

// RunResult summarizes one pass.
type RunResult struct {
	Profiles    int
	Recomputed  int
	DigestsSent int
	Failures    int
}

// Scheduler recomputes every profile on a cron schedule and mails its digest.
type Scheduler struct {
	cron      *cron.Cron
	profiles  ProfileLister
	recompute Recomputer
	digest    DigestSender
	cfg       Config
	running   atomic.Bool
}

// NewScheduler creates a new scheduler. digest may be nil to skip alert mails.
func NewScheduler(profiles ProfileLister, recompute Recomputer, digest DigestSender, cfg Config) *Scheduler {
	if cfg.Spec == "" {
		cfg.Spec = DefaultSpec
	}
	return &Scheduler{
		cron:      cron.New(),
		profiles:  profiles,
		recompute: recompute,
		digest:    digest,
		cfg:       cfg,
	}
}

// Start registers the pass and starts the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			slog.Error("Scheduled analytics pass failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.cfg.Spec, err)
	}

	s.cron.Start()
	slog.Info("Analytics scheduler started", "spec", s.cfg.Spec)
	return nil
}

// Stop stops the cron loop and waits for a running pass to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		slog.Info("Analytics scheduler stopped")
	case <-ctx.Done():
		slog.Warn("Analytics scheduler stop timed out")
	}
}

// RunOnce processes every profile once. Overlapping passes are skipped.
// A failing profile is logged and does not stop the pass.
func (s *Scheduler) RunOnce(ctx context.Context) (*RunResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("Analytics pass already running, skipping")
		return &RunResult{}, nil
	}
	defer s.running.Store(false)

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	result := &RunResult{Profiles: len(profiles)}
	for _, profileID := range profiles {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		s.runProfile(ctx, profileID, result)
	}

	slog.Info("Analytics pass completed",
		"profiles", result.Profiles,
		"recomputed", result.Recomputed,
		"digests", result.DigestsSent,
		"failures", result.Failures,
	)
	return result, nil
}

func (s *Scheduler) runProfile(ctx context.Context, profileID uuid.UUID, result *RunResult) {
	logger := slog.With("profileID", profileID.String())

	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	out, err := s.recompute.Execute(ctx, analytics.RecomputeInput{ProfileID: profileID})
	if err != nil {
		logger.Error("Failed to recompute profile", "error", err)
		result.Failures++
		return
	}
	result.Recomputed++

	if s.digest == nil {
		return
	}

	sent, err := s.digest.Execute(ctx, alert.SendDigestInput{State: out.State})
	if err != nil {
		logger.Error("Failed to send alert digest", "error", err)
		result.Failures++
		return
	}
	if sent.Sent {
		result.DigestsSent++
	}
}
