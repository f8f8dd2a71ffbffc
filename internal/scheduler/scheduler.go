package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fluffyshare/internal/domain"
	"fluffyshare/internal/service"
)

// Runner defines the interface for pipeline runs.
type Runner interface {
	Run(ctx context.Context, runType domain.RunType) (*domain.ProcessingLog, error)
}

type Scheduler struct {
	runner  Runner
	cron    *cron.Cron
	entryID cron.EntryID
	ctx     context.Context
	logger  *slog.Logger
}

func NewScheduler(runner Runner, timezone string, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return &Scheduler{
		runner: runner,
		cron:   cron.New(cron.WithLocation(loc)),
		ctx:    context.Background(),
		logger: logger.With("component", "scheduler"),
	}, nil
}

// Schedule registers the daily batch run on a standard five-field cron spec,
// replacing any previous registration.
func (s *Scheduler) Schedule(spec string) error {
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	entryID, err := s.cron.AddFunc(spec, s.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule %q: %w", spec, err)
	}

	s.entryID = entryID
	return nil
}

// Start runs scheduled jobs until ctx is cancelled, then waits for an active
// job to return.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx = ctx
	s.cron.Start()

	s.logger.Info("scheduler started", "next_run", s.cron.Entry(s.entryID).Next)

	<-ctx.Done()
	s.Stop()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	run, err := s.runner.Run(s.ctx, domain.RunDailyBatch)
	switch {
	case errors.Is(err, service.ErrRunInProgress):
		s.logger.Info("skipping scheduled run, another run is active")
	case err != nil:
		s.logger.Error("scheduled run failed", "error", err)
	default:
		s.logger.Info("scheduled run finished", "run_id", run.ID, "scores", run.ScoresComputed)
	}
}
