package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/datasource"
	"github.com/yourusername/fireball-picks/internal/metrics"
	"github.com/yourusername/fireball-picks/internal/models"
)

// SkippedUnit records a single source fetch that failed and was skipped.
// Skips never abort the run; they are itemized in the run result.
type SkippedUnit struct {
	Source string `json:"source"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// IngestionService fetches the two raw series day by day with
// partial-failure isolation: one day's fetch failure is logged and
// recorded, and the rest of the range still gets ingested.
type IngestionService struct {
	results datasource.ResultsSource
	odds    datasource.OddsSource
	logger  *logrus.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(results datasource.ResultsSource, odds datasource.OddsSource, logger *logrus.Logger) *IngestionService {
	if logger == nil {
		logger = logrus.New()
	}
	return &IngestionService{results: results, odds: odds, logger: logger}
}

// FetchRange ingests both series for every day from start through end
// inclusive
func (s *IngestionService) FetchRange(ctx context.Context, start, end time.Time) ([]datasource.ResultRow, []datasource.OddsRow, []SkippedUnit) {
	var results []datasource.ResultRow
	var odds []datasource.OddsRow
	var skipped []SkippedUnit

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(models.DateLayout)

		dayResults, err := s.results.FetchResults(ctx, day)
		if err != nil {
			skipped = append(skipped, s.recordSkip(s.results.Name(), date, err))
		} else {
			results = append(results, dayResults...)
		}

		dayOdds, err := s.odds.FetchOdds(ctx, day)
		if err != nil {
			skipped = append(skipped, s.recordSkip(s.odds.Name(), date, err))
		} else {
			odds = append(odds, dayOdds...)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"start":   start.Format(models.DateLayout),
		"end":     end.Format(models.DateLayout),
		"results": len(results),
		"odds":    len(odds),
		"skipped": len(skipped),
	}).Info("Ingestion range complete")

	return results, odds, skipped
}

func (s *IngestionService) recordSkip(source, date string, err error) SkippedUnit {
	metrics.SourceFetchErrorsTotal.WithLabelValues(source).Inc()
	s.logger.WithFields(logrus.Fields{
		"source": source,
		"date":   date,
	}).Warnf("Source fetch failed, skipping day: %v", err)
	return SkippedUnit{Source: source, Date: date, Reason: err.Error()}
}
