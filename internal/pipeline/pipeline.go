// Package pipeline orchestrates one end-to-end run: ingest both series,
// merge and accumulate the unified table, train the two market models
// behind the cutoff, score every game, grade confidence and backtest.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/backtest"
	"github.com/yourusername/fireball-picks/internal/dataset"
	"github.com/yourusername/fireball-picks/internal/metrics"
	"github.com/yourusername/fireball-picks/internal/models"
	"github.com/yourusername/fireball-picks/internal/predict"
	"github.com/yourusername/fireball-picks/internal/storage"
)

// Run statuses
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Options parameterizes a single pipeline run
type Options struct {
	StartDate     time.Time
	EndDate       time.Time
	CutoffLagDays int

	// ResumeLookbackDays, when positive, moves the fetch start forward to
	// the last persisted game date minus this window, so scheduled runs
	// re-fetch only days whose results or lines can still change instead
	// of the whole range. StartDate stays the floor and the fallback for
	// an empty table.
	ResumeLookbackDays int

	// Now overrides the run clock; zero means time.Now. The cutoff is
	// resolved as Now minus the lag at run time.
	Now time.Time
}

// Result is the structured outcome of a run
type Result struct {
	RunID   string                `json:"run_id"`
	Status  string                `json:"status"`
	Games   []*models.Game        `json:"games"`
	Report  backtest.Report       `json:"report"`
	Skipped []SkippedUnit         `json:"skipped"`
	Trained map[models.Market]int `json:"trained"`
}

// Runner wires the pipeline stages together
type Runner struct {
	ingestion *IngestionService
	store     storage.Store
	cache     *predict.Cache
	logger    *logrus.Logger
}

// NewRunner creates a pipeline runner. The cache is optional.
func NewRunner(ingestion *IngestionService, store storage.Store, cache *predict.Cache, logger *logrus.Logger) *Runner {
	if logger == nil {
		logger = logrus.New()
	}
	return &Runner{ingestion: ingestion, store: store, cache: cache, logger: logger}
}

// Run executes the full pipeline. The whole new table is computed in
// memory and persisted with a single Save at the end, so a failed run
// leaves the previously persisted table untouched.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	metrics.PipelineRunsTotal.Inc()
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	runID := uuid.New().String()
	r.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"start":  opts.StartDate.Format(models.DateLayout),
		"end":    opts.EndDate.Format(models.DateLayout),
		"lag":    opts.CutoffLagDays,
	}).Info("Starting pipeline run")

	result, err := r.run(ctx, runID, opts, now)
	if err != nil {
		metrics.PipelineFailuresTotal.Inc()
		return nil, err
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, runID string, opts Options, now time.Time) (*Result, error) {
	existing, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted table: %w", err)
	}

	start := r.resumeStart(existing, opts)
	results, odds, skipped := r.ingestion.FetchRange(ctx, start, opts.EndDate)

	batch, err := dataset.Merge(results, odds, r.logger)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	metrics.GamesIngestedTotal.Add(float64(len(batch)))

	unified := dataset.Accumulate(existing, batch, r.logger)
	metrics.UnifiedTableRows.Set(float64(len(unified)))

	cutoff := dataset.CutoffDate(now, opts.CutoffLagDays)
	training, err := dataset.TrainingSplit(unified, cutoff, r.logger)
	if err != nil {
		return nil, fmt.Errorf("training split failed: %w", err)
	}

	predictor, err := predict.Train(training, r.logger)
	if err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	metrics.TrainingRows.WithLabelValues(string(models.MarketATS)).Set(float64(predictor.ATS.TrainedRows))
	metrics.TrainingRows.WithLabelValues(string(models.MarketTotal)).Set(float64(predictor.Total.TrainedRows))

	scored := predictor.ScoreAll(unified, r.cache, r.logger)
	metrics.GamesScoredTotal.Add(float64(scored))

	if err := r.store.Save(ctx, unified); err != nil {
		return nil, fmt.Errorf("failed to persist table: %w", err)
	}

	report := backtest.Evaluate(unified, backtest.Options{}, r.logger)
	publishAccuracy(report)

	r.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"games":   len(unified),
		"scored":  scored,
		"skipped": len(skipped),
	}).Info("Pipeline run complete")

	return &Result{
		RunID:   runID,
		Status:  StatusSucceeded,
		Games:   unified,
		Report:  report,
		Skipped: skipped,
		Trained: map[models.Market]int{
			models.MarketATS:   predictor.ATS.TrainedRows,
			models.MarketTotal: predictor.Total.TrainedRows,
		},
	}, nil
}

// resumeStart picks the fetch start for this run. With a lookback window
// and a non-empty table it resumes from the latest persisted date minus
// the window, never earlier than the configured start.
func (r *Runner) resumeStart(existing []*models.Game, opts Options) time.Time {
	if opts.ResumeLookbackDays <= 0 || len(existing) == 0 {
		return opts.StartDate
	}

	var last time.Time
	for _, game := range existing {
		day, err := time.Parse(models.DateLayout, game.Date)
		if err != nil {
			continue
		}
		if day.After(last) {
			last = day
		}
	}
	if last.IsZero() {
		return opts.StartDate
	}

	resume := last.AddDate(0, 0, -opts.ResumeLookbackDays)
	if !resume.After(opts.StartDate) {
		return opts.StartDate
	}
	r.logger.WithFields(logrus.Fields{
		"last_persisted": last.Format(models.DateLayout),
		"resume_from":    resume.Format(models.DateLayout),
	}).Info("Resuming ingestion from last persisted date")
	return resume
}

func publishAccuracy(report backtest.Report) {
	if accuracy := report.ATS.Overall.Accuracy(); accuracy != nil {
		metrics.BacktestAccuracy.WithLabelValues(string(models.MarketATS)).Set(*accuracy)
	}
	if accuracy := report.Total.Overall.Accuracy(); accuracy != nil {
		metrics.BacktestAccuracy.WithLabelValues(string(models.MarketTotal)).Set(*accuracy)
	}
}
