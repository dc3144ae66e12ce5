package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func settledGame(homeScore, awayScore int, spreadHome, totalLine float64) *Game {
	return &Game{
		Date:       "2024-06-01",
		HomeTeam:   "Boston Red Sox",
		AwayTeam:   "New York Yankees",
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		SpreadHome: floatPtr(spreadHome),
		TotalLine:  floatPtr(totalLine),
	}
}

func TestATSOutcome(t *testing.T) {
	tests := []struct {
		name       string
		homeScore  int
		awayScore  int
		spreadHome float64
		want       Outcome
	}{
		{"home covers outright", 6, 3, -1.5, OutcomeHome},
		{"home wins but fails to cover", 4, 3, -1.5, OutcomeAway},
		{"away covers on the road", 2, 5, 1.5, OutcomeAway},
		{"underdog home covers with plus spread", 3, 4, 1.5, OutcomeHome},
		{"exactly on the line is a push", 4, 6, 2.0, OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := settledGame(tt.homeScore, tt.awayScore, tt.spreadHome, 8.5)
			outcome, ok := game.ATSOutcome()
			assert.True(t, ok)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestATSOutcomeUndefined(t *testing.T) {
	game := settledGame(5, 3, -1.5, 8.5)
	game.HomeScore = nil
	_, ok := game.ATSOutcome()
	assert.False(t, ok, "missing score must leave the outcome undefined")

	game = settledGame(5, 3, -1.5, 8.5)
	game.SpreadHome = nil
	_, ok = game.ATSOutcome()
	assert.False(t, ok, "missing spread must leave the outcome undefined")
}

func TestTotalOutcome(t *testing.T) {
	tests := []struct {
		name      string
		homeScore int
		awayScore int
		totalLine float64
		want      Outcome
	}{
		{"combined above the line", 6, 4, 8.5, OutcomeOver},
		{"combined below the line", 2, 3, 8.5, OutcomeUnder},
		{"combined exactly on a whole line", 5, 4, 9.0, OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := settledGame(tt.homeScore, tt.awayScore, -1.5, tt.totalLine)
			outcome, ok := game.TotalOutcome()
			assert.True(t, ok)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestTotalOutcomeUndefined(t *testing.T) {
	game := settledGame(5, 3, -1.5, 8.5)
	game.TotalLine = nil
	_, ok := game.TotalOutcome()
	assert.False(t, ok)
}

func TestOutcomeByMarket(t *testing.T) {
	game := settledGame(6, 3, -1.5, 8.5)

	ats, ok := game.Outcome(MarketATS)
	assert.True(t, ok)
	assert.Equal(t, OutcomeHome, ats)

	total, ok := game.Outcome(MarketTotal)
	assert.True(t, ok)
	assert.Equal(t, OutcomeOver, total)
}

func TestPickAgrees(t *testing.T) {
	assert.True(t, PickHome.Agrees(OutcomeHome))
	assert.True(t, PickUnder.Agrees(OutcomeUnder))
	assert.False(t, PickHome.Agrees(OutcomeAway))
	assert.False(t, PickOver.Agrees(OutcomePush))
}

func TestIsComplete(t *testing.T) {
	game := settledGame(5, 3, -1.5, 8.5)
	assert.True(t, game.IsComplete())

	game.TotalLine = nil
	assert.False(t, game.IsComplete(), "total line is part of completeness")

	game = settledGame(5, 3, -1.5, 8.5)
	game.AwayScore = nil
	assert.False(t, game.IsComplete())
}

func TestCloneIsDeep(t *testing.T) {
	game := settledGame(5, 3, -1.5, 8.5)
	pick := PickHome
	game.ATSPick = &pick

	clone := game.Clone()
	*clone.HomeScore = 99
	*clone.ATSPick = PickAway

	assert.Equal(t, 5, *game.HomeScore)
	assert.Equal(t, PickHome, *game.ATSPick)
}
