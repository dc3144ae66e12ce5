// Package scheduler runs the pipeline on a cron schedule for the daemon.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/pipeline"
)

// Scheduler manages scheduled pipeline runs
type Scheduler struct {
	cron       *cron.Cron
	runner     *pipeline.Runner
	buildOpts  func(now time.Time) pipeline.Options
	logger     *logrus.Logger
	mu         sync.Mutex
	isRunning  bool
	jobIDs     []cron.EntryID
	runTimeout time.Duration
}

// NewScheduler creates a new scheduler. buildOpts resolves the run
// options at trigger time so the date range and cutoff track the clock.
func NewScheduler(runner *pipeline.Runner, buildOpts func(now time.Time) pipeline.Options, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		runner:     runner,
		buildOpts:  buildOpts,
		logger:     logger,
		runTimeout: 2 * time.Hour,
	}
}

// SchedulePipeline schedules recurring pipeline runs
func (s *Scheduler) SchedulePipeline(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		now := time.Now().UTC()
		s.logger.WithField("time", now).Info("Starting scheduled pipeline run")

		result, err := s.runner.Run(ctx, s.buildOpts(now))
		if err != nil {
			s.logger.Errorf("Scheduled pipeline run failed: %v", err)
			return
		}
		s.logger.WithFields(logrus.Fields{
			"run_id":  result.RunID,
			"games":   len(result.Games),
			"skipped": len(result.Skipped),
		}).Info("Scheduled pipeline run completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled pipeline job")
	return nil
}

// Start begins executing scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	s.isRunning = false

	select {
	case <-stopCtx.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for running jobs: %w", ctx.Err())
	}
}
