// Package main prints a fireball accuracy report for the stored prediction
// table without re-running ingestion or training.
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
	"github.com/yourusername/fireball-picks/internal/logger"
	"github.com/yourusername/fireball-picks/internal/models"
	"github.com/yourusername/fireball-picks/internal/repository"
	"github.com/yourusername/fireball-picks/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	since := flag.String("since", "", "Only grade games on or after this date (YYYY-MM-DD)")
	csvExport := flag.String("csv-export", "", "Optional path for a CSV copy of the report")
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
	if cfg.Storage.Backend == "postgres" {
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = repository.NewGameRepository(db)
	} else {
		store = storage.NewCSVStore(cfg.Storage.CSVPath, log)
	}

	games, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load games: %v", err)
	}
	if len(games) == 0 {
		log.Fatal("No games stored, run the pipeline first")
	}

	opts := backtest.Options{}
	if *since != "" {
		day, err := time.Parse(models.DateLayout, *since)
		if err != nil {
			log.Fatalf("Invalid -since date %q: %v", *since, err)
		}
		opts.Since = &day
	}

	report := backtest.Evaluate(games, opts, log)
	fmt.Println(backtest.GenerateConsoleReport(report))

	if *csvExport != "" {
		if err := backtest.GenerateCSVExport(report, *csvExport); err != nil {
			log.Fatalf("Failed to export report: %v", err)
		}
		log.WithField("path", *csvExport).Info("Report exported")
	}
}
