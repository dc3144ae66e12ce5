// Package main provides the entry point for a single end-to-end pipeline run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/backtest"
	"github.com/yourusername/fireball-picks/internal/config"
	"github.com/yourusername/fireball-picks/internal/database"
	"github.com/yourusername/fireball-picks/internal/datasource"
	"github.com/yourusername/fireball-picks/internal/logger"
	"github.com/yourusername/fireball-picks/internal/models"
	"github.com/yourusername/fireball-picks/internal/pipeline"
	"github.com/yourusername/fireball-picks/internal/predict"
	"github.com/yourusername/fireball-picks/internal/repository"
	"github.com/yourusername/fireball-picks/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		startDate  = flag.String("start-date", "", "Override ingestion start date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Override ingestion end date (YYYY-MM-DD)")
		cutoffLag  = flag.Int("cutoff-lag", 0, "Override training cutoff lag in days")
		csvExport  = flag.String("csv-export", "", "Optional path for a CSV accuracy export")
	)
	flag.Parse()

	cfg, log := loadConfig(*configPath)
	ctx := context.Background()

	store, cleanup := buildStore(ctx, cfg, log)
	defer cleanup()

	sources := datasource.NewSources(&cfg.Sources, log)
	defer sources.Close()

	runner := pipeline.NewRunner(
		pipeline.NewIngestionService(sources.Results, sources.Odds, log),
		store,
		predict.NewCache(cfg.Pipeline.CacheTTL()),
		log,
	)

	opts := buildOptions(cfg, *startDate, *endDate, *cutoffLag, log)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	fmt.Print(backtest.GenerateConsoleReport(result.Report))
	for _, unit := range result.Skipped {
		log.WithFields(logrus.Fields{"source": unit.Source, "date": unit.Date}).
			Warnf("Skipped: %s", unit.Reason)
	}

	if *csvExport != "" {
		if err := backtest.GenerateCSVExport(result.Report, *csvExport); err != nil {
			log.Fatalf("Failed to write CSV export: %v", err)
		}
		log.WithField("path", *csvExport).Info("Wrote CSV accuracy export")
	}
}

func loadConfig(path string) (*config.Config, *logrus.Logger) {
	bootstrap := logrus.New()

	cfg, err := config.Load(path)
	if err != nil {
		bootstrap.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			bootstrap.Fatalf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			bootstrap.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootstrap.Fatalf("Invalid configuration: %v", err)
	}

	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
}

func buildStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (storage.Store, func()) {
	if cfg.Storage.Backend == "postgres" {
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.InitSchema(ctx, db); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		return repository.NewGameRepository(db), db.Close
	}
	return storage.NewCSVStore(cfg.Storage.CSVPath, log), func() {}
}

func buildOptions(cfg *config.Config, startOverride, endOverride string, lagOverride int, log *logrus.Logger) pipeline.Options {
	now := time.Now().UTC()

	start, err := time.Parse(models.DateLayout, cfg.Pipeline.StartDate)
	if err != nil {
		log.Fatalf("Invalid pipeline start date: %v", err)
	}
	end := now.AddDate(0, 0, cfg.Pipeline.LookaheadDays)

	if startOverride != "" {
		if start, err = time.Parse(models.DateLayout, startOverride); err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
	}
	if endOverride != "" {
		if end, err = time.Parse(models.DateLayout, endOverride); err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}

	lag := cfg.Pipeline.CutoffLagDays
	if lagOverride > 0 {
		lag = lagOverride
	}

	// An explicit range should be fetched in full, so resume only applies
	// when the configured start is in effect.
	lookback := cfg.Pipeline.ResumeLookbackDays
	if startOverride != "" {
		lookback = 0
	}

	return pipeline.Options{StartDate: start, EndDate: end, CutoffLagDays: lag, ResumeLookbackDays: lookback, Now: now}
}
