package predict

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
)

// Predictor bundles the two trained market models for a scoring pass
type Predictor struct {
	ATS   *Model
	Total *Model
}

// Train fits both market models on the training subset. A market with no
// trainable rows fails the whole run; the caller decides whether to retry
// once more data has settled.
func Train(training []*models.Game, logger *logrus.Logger) (*Predictor, error) {
	ats, err := Fit(models.MarketATS, training, logger)
	if err != nil {
		return nil, err
	}
	total, err := Fit(models.MarketTotal, training, logger)
	if err != nil {
		return nil, err
	}
	return &Predictor{ATS: ats, Total: total}, nil
}

// Version identifies the pair of trained models
func (p *Predictor) Version() string {
	return p.ATS.Version + ":" + p.Total.Version
}

// ScoreAll scores every game in place, overwriting the prediction
// columns, and returns how many games received predictions. Games whose
// features are entirely unavailable keep nil prediction columns. The
// optional cache short-circuits games already scored by this model pair.
func (p *Predictor) ScoreAll(games []*models.Game, cache *Cache, logger *logrus.Logger) int {
	if logger == nil {
		logger = logrus.New()
	}

	scored := 0
	for _, game := range games {
		game.ClearPredictions()

		if cache != nil {
			if hit, ok := cache.Get(game.Key(), p.Version()); ok {
				hit.apply(game)
				scored++
				continue
			}
		}

		atsPick, atsConf, atsOK := p.ATS.Score(game, logger)
		totalPick, totalConf, totalOK := p.Total.Score(game, logger)
		if !atsOK && !totalOK {
			logger.WithField("game", game.Key().String()).Debug("No features available, game not scored")
			continue
		}

		if atsOK {
			rating := Fireballs(atsConf)
			game.ATSPick = &atsPick
			game.ATSConfidence = &atsConf
			game.ATSFireballs = &rating
		}
		if totalOK {
			rating := Fireballs(totalConf)
			game.TotalPick = &totalPick
			game.TotalConfidence = &totalConf
			game.TotalFireballs = &rating
		}
		scored++

		if cache != nil && game.IsComplete() {
			// Settled games cannot change under the same model pair.
			cache.Put(game.Key(), p.Version(), snapshotPredictions(game))
		}
	}

	logger.WithFields(logrus.Fields{
		"games":  len(games),
		"scored": scored,
	}).Info("Scoring pass complete")

	return scored
}
