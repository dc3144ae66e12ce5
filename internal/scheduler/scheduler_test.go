package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fireball-picks/internal/pipeline"
	"github.com/yourusername/fireball-picks/internal/storage"
)

func newTestScheduler() *Scheduler {
	runner := pipeline.NewRunner(nil, storage.NewMemoryStore(), nil, nil)
	buildOpts := func(now time.Time) pipeline.Options {
		return pipeline.Options{StartDate: now, EndDate: now, CutoffLagDays: 5, Now: now}
	}
	return NewScheduler(runner, buildOpts, nil)
}

func TestSchedulePipelineValidCron(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.SchedulePipeline("0 11 * * *"))
	assert.Len(t, s.jobIDs, 1)
}

func TestSchedulePipelineInvalidCron(t *testing.T) {
	s := newTestScheduler()
	err := s.SchedulePipeline("not a cron expression")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add job")
}

func TestScheduleWhileRunningFails(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.SchedulePipeline("0 11 * * *"))
	s.Start()
	defer s.Stop(context.Background())

	assert.Error(t, s.SchedulePipeline("0 12 * * *"))
}

func TestStartStopLifecycle(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.SchedulePipeline("0 11 * * *"))

	s.Start()
	s.Start() // second start is a no-op
	assert.True(t, s.isRunning)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.isRunning)

	require.NoError(t, s.Stop(ctx), "stopping a stopped scheduler is a no-op")
}
