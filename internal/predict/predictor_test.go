package predict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fireball-picks/internal/models"
)

func TestTrainFitsBothMarkets(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)
	assert.Equal(t, models.MarketATS, predictor.ATS.Market)
	assert.Equal(t, models.MarketTotal, predictor.Total.Market)
	assert.Contains(t, predictor.Version(), predictor.ATS.Version)
}

func TestScoreAllSetsBothPredictions(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)

	games := []*models.Game{trainingGame(100, true), trainingGame(101, false)}
	scored := predictor.ScoreAll(games, nil, nil)
	assert.Equal(t, 2, scored)

	for _, game := range games {
		require.NotNil(t, game.ATSPick)
		require.NotNil(t, game.ATSConfidence)
		require.NotNil(t, game.ATSFireballs)
		require.NotNil(t, game.TotalPick)
		assert.Equal(t, Fireballs(*game.ATSConfidence), *game.ATSFireballs)
		assert.GreaterOrEqual(t, *game.ATSFireballs, 1)
		assert.LessOrEqual(t, *game.ATSFireballs, 5)
	}
}

func TestScoreAllOverwritesStalePredictions(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)

	stale := models.PickAway
	game := trainingGame(100, true)
	game.ATSPick = &stale

	predictor.ScoreAll([]*models.Game{game}, nil, nil)
	require.NotNil(t, game.ATSPick)
	assert.Equal(t, models.PickHome, *game.ATSPick, "every scoring pass rewrites the prediction columns")
}

func TestScoreAllSkipsFeaturelessGames(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)

	stale := models.PickHome
	bare := &models.Game{Date: "2024-07-01", HomeTeam: "Home", AwayTeam: "Away", ATSPick: &stale}

	scored := predictor.ScoreAll([]*models.Game{bare}, nil, nil)
	assert.Equal(t, 0, scored)
	assert.Nil(t, bare.ATSPick, "unscorable games end the pass with clear prediction columns")
	assert.Nil(t, bare.TotalPick)
}

func TestScoreAllUsesCacheForSettledGames(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)
	cache := NewCache(time.Minute)

	settled := trainingGame(100, true)
	predictor.ScoreAll([]*models.Game{settled}, cache, nil)
	firstPick := *settled.ATSPick

	rescored := trainingGame(100, true)
	predictor.ScoreAll([]*models.Game{rescored}, cache, nil)
	assert.Equal(t, firstPick, *rescored.ATSPick)

	hits, _ := cache.Stats()
	assert.Equal(t, uint64(1), hits, "second pass must hit the cache")
}

func TestCacheServesAcrossRetrainedPredictors(t *testing.T) {
	cache := NewCache(time.Minute)

	// Two independent training passes over the same data, as consecutive
	// scheduled runs produce.
	first, err := Train(separableTraining(40), nil)
	require.NoError(t, err)
	second, err := Train(separableTraining(40), nil)
	require.NoError(t, err)
	require.Equal(t, first.Version(), second.Version())

	settled := trainingGame(100, true)
	first.ScoreAll([]*models.Game{settled}, cache, nil)

	rescored := trainingGame(100, true)
	second.ScoreAll([]*models.Game{rescored}, cache, nil)
	assert.Equal(t, *settled.ATSPick, *rescored.ATSPick)

	hits, _ := cache.Stats()
	assert.Equal(t, uint64(1), hits, "a retrain on unchanged data must still hit the cache")
}

func TestCacheMissesAcrossModelVersions(t *testing.T) {
	cache := NewCache(time.Minute)
	game := trainingGame(0, true)

	cache.Put(game.Key(), "v1", cachedPrediction{})
	_, ok := cache.Get(game.Key(), "v2")
	assert.False(t, ok, "a retrained model pair must not reuse old predictions")

	_, ok = cache.Get(game.Key(), "v1")
	assert.True(t, ok)
}

func TestCacheDoesNotStoreUnsettledGames(t *testing.T) {
	predictor, err := Train(separableTraining(40), nil)
	require.NoError(t, err)
	cache := NewCache(time.Minute)

	upcoming := trainingGame(100, true)
	upcoming.HomeScore = nil
	upcoming.AwayScore = nil

	predictor.ScoreAll([]*models.Game{upcoming}, cache, nil)
	_, ok := cache.Get(upcoming.Key(), predictor.Version())
	assert.False(t, ok, "only settled games are safe to cache")
}
