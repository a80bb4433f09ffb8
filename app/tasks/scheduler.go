package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/antgrillet/hbcaix-sync/app/syncer"
)

// runTimeout bounds one full sync pass. A hung browser must not wedge the
// scheduler forever.
const runTimeout = 15 * time.Minute

// SyncRunner is the orchestrator entry point the scheduler and the admin
// API share.
type SyncRunner interface {
	SyncAll(ctx context.Context) (*syncer.RunSummary, error)
}

var _ SyncRunner = (*syncer.Orchestrator)(nil)

// Scheduler registers the recurring sync triggers against a calendar clock.
// The handle is owned by the composition root; starting it twice is a caller
// error, reported as such rather than silently ignored.
type Scheduler struct {
	runner  SyncRunner
	cron    *cron.Cron
	specs   []string
	mu      sync.Mutex
	started bool
}

// NewScheduler builds a scheduler firing at the given cron specs, evaluated
// in loc (the club timezone).
func NewScheduler(runner SyncRunner, loc *time.Location, specs []string) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		runner: runner,
		cron:   cron.New(cron.WithLocation(loc)),
		specs:  specs,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	for _, spec := range s.specs {
		if _, err := s.cron.AddFunc(spec, s.run); err != nil {
			return fmt.Errorf("failed to register schedule %q: %w", spec, err)
		}
	}

	s.cron.Start()
	s.started = true
	slog.Info("Sync scheduler started", "schedules", s.specs)
	return nil
}

// Stop halts the calendar triggers and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	<-s.cron.Stop().Done()
	s.started = false
	slog.Info("Sync scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	summary, err := s.runner.SyncAll(ctx)
	if err != nil {
		slog.Error("Scheduled sync failed", "error", err)
		return
	}

	slog.Info("Scheduled sync completed",
		"teams", len(summary.Results),
		"created", summary.TotalCreated,
		"updated", summary.TotalUpdated,
		"skipped", summary.TotalSkipped,
		"errored", len(summary.ErroredTeams))
}
