package dataset

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

// Accumulate merges a freshly built batch into the previously persisted
// table. Rows are replaced wholesale by key: a batch row always wins over
// a persisted row with the same key, persisted rows whose key is absent
// from the batch survive unchanged, and the result carries at most one
// row per key. Calling it again with the same batch converges to the
// same table, so overlapping re-runs are safe.
func Accumulate(existing, batch []*models.Game, logger *logrus.Logger) []*models.Game {
	if logger == nil {
		logger = logrus.New()
	}

	merged := make(map[models.GameKey]*models.Game, len(existing)+len(batch))
	for _, game := range existing {
		merged[game.Key()] = game.Clone()
	}

	replaced := 0
	for _, game := range batch {
		key := game.Key()
		if _, ok := merged[key]; ok {
			replaced++
		}
		merged[key] = game.Clone()
	}

	result := make([]*models.Game, 0, len(merged))
	for _, game := range merged {
		result = append(result, game)
	}
	sortGames(result)

	logger.WithFields(logrus.Fields{
		"existing": len(existing),
		"batch":    len(batch),
		"replaced": replaced,
		"total":    len(result),
	}).Info("Accumulated game batch into unified table")

	return result
}

// sortGames orders games by key for stable persisted output
func sortGames(games []*models.Game) {
	sort.Slice(games, func(i, j int) bool {
		a, b := games[i], games[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.AwayTeam != b.AwayTeam {
			return a.AwayTeam < b.AwayTeam
		}
		return a.HomeTeam < b.HomeTeam
	})
}
