package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/antgrillet/hbcaix-sync/app/syncer"
)

type noopRunner struct{}

func (noopRunner) SyncAll(ctx context.Context) (*syncer.RunSummary, error) {
	return &syncer.RunSummary{}, nil
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(noopRunner{}, time.UTC, []string{"30 6 * * *", "0 18 * * 6"})

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()

	// Stop is idempotent.
	s.Stop()
}

func TestSchedulerDoubleStart(t *testing.T) {
	s := NewScheduler(noopRunner{}, time.UTC, []string{"30 6 * * *"})

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Fatal("expected error on double start")
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(noopRunner{}, time.UTC, []string{"not a cron spec"})

	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestSchedulerNilLocationDefaults(t *testing.T) {
	s := NewScheduler(noopRunner{}, nil, []string{"0 22 * * 3"})

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
}
