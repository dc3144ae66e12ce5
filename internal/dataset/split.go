package dataset

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

// CutoffDate resolves the training cutoff from the run time and the
// configured lag. Games on or after the cutoff day are too recent to
// train on: their outcome was unknowable at real prediction time.
func CutoffDate(now time.Time, lagDays int) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -lagDays)
}

// TrainingSplit selects the training subset: games strictly before the
// cutoff day that are fully settled with both market lines present. The
// inference subset is always the whole table and needs no selection.
// Returns ErrInsufficientData when nothing qualifies.
func TrainingSplit(games []*models.Game, cutoff time.Time, logger *logrus.Logger) ([]*models.Game, error) {
	if logger == nil {
		logger = logrus.New()
	}
	cutoffDay := cutoff.UTC().Format(models.DateLayout)

	training := make([]*models.Game, 0, len(games))
	for _, game := range games {
		if game.Date >= cutoffDay {
			continue
		}
		if !game.IsComplete() {
			continue
		}
		training = append(training, game)
	}

	if len(training) == 0 {
		return nil, models.ErrInsufficientData
	}

	logger.WithFields(logrus.Fields{
		"cutoff":   cutoffDay,
		"total":    len(games),
		"training": len(training),
	}).Info("Selected training subset")

	return training, nil
}
