// Package main provides the scheduled ingestion daemon: it runs the full
// pipeline on a cron schedule and serves health and metrics endpoints.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/config"
	"github.com/yourusername/fireball-picks/internal/database"
	"github.com/yourusername/fireball-picks/internal/datasource"
	"github.com/yourusername/fireball-picks/internal/health"
	"github.com/yourusername/fireball-picks/internal/logger"
	"github.com/yourusername/fireball-picks/internal/models"
	"github.com/yourusername/fireball-picks/internal/pipeline"
	"github.com/yourusername/fireball-picks/internal/predict"
	"github.com/yourusername/fireball-picks/internal/repository"
	"github.com/yourusername/fireball-picks/internal/scheduler"
	"github.com/yourusername/fireball-picks/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	bootstrap := logrus.New()
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootstrap.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			bootstrap.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		bootstrap.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	ctx := context.Background()

	var store storage.Store
	var dbPinger health.Pinger
	if cfg.Storage.Backend == "postgres" {
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := database.InitSchema(ctx, db); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = repository.NewGameRepository(db)
		dbPinger = db
	} else {
		store = storage.NewCSVStore(cfg.Storage.CSVPath, log)
	}

	sources := datasource.NewSources(&cfg.Sources, log)
	defer sources.Close()

	runner := pipeline.NewRunner(
		pipeline.NewIngestionService(sources.Results, sources.Odds, log),
		store,
		predict.NewCache(cfg.Pipeline.CacheTTL()),
		log,
	)

	sched := scheduler.NewScheduler(runner, buildOptions(cfg, log), log)
	if err := sched.SchedulePipeline(cfg.Schedule.PipelineCron); err != nil {
		log.Fatalf("Failed to schedule pipeline: %v", err)
	}

	var healthServer *health.Server
	if cfg.Metrics.Enabled {
		healthServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Port:        cfg.Metrics.Port,
			MetricsPath: cfg.Metrics.Path,
			Logger:      log,
			DB:          dbPinger,
		})
		go func() {
			if err := healthServer.Start(); err != nil {
				log.Errorf("Health server stopped: %v", err)
			}
		}()
	}

	sched.Start()
	if healthServer != nil {
		healthServer.SetReady(true)
	}
	log.Info("Ingestion daemon started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Errorf("Scheduler shutdown: %v", err)
	}
	if healthServer != nil {
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Health server shutdown: %v", err)
		}
	}
}

// buildOptions resolves run options at trigger time so the date range
// and cutoff track the clock
func buildOptions(cfg *config.Config, log *logrus.Logger) func(now time.Time) pipeline.Options {
	start, err := time.Parse(models.DateLayout, cfg.Pipeline.StartDate)
	if err != nil {
		log.Fatalf("Invalid pipeline start date: %v", err)
	}
	return func(now time.Time) pipeline.Options {
		return pipeline.Options{
			StartDate:          start,
			EndDate:            now.AddDate(0, 0, cfg.Pipeline.LookaheadDays),
			CutoffLagDays:      cfg.Pipeline.CutoffLagDays,
			ResumeLookbackDays: cfg.Pipeline.ResumeLookbackDays,
			Now:                now,
		}
	}
}
