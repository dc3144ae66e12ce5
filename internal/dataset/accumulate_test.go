package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fireball-picks/internal/models"
)

func tableGame(date, home, away string, homeScore int) *models.Game {
	return &models.Game{
		Date:      date,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: intPtr(homeScore),
		AwayScore: intPtr(0),
	}
}

func TestAccumulateBatchRowWins(t *testing.T) {
	existing := []*models.Game{
		tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 2),
	}
	// Re-fetch of the same day carries a corrected score.
	batch := []*models.Game{
		tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5),
	}

	merged := Accumulate(existing, batch, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, *merged[0].HomeScore, "batch row must replace the persisted row wholesale")
}

func TestAccumulateReplacementClearsStaleColumns(t *testing.T) {
	pick := models.PickHome
	stale := tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5)
	stale.ATSPick = &pick
	stale.TotalLine = floatPtr(8.5)

	// The new batch row has no odds and no predictions: replacement is
	// wholesale, nothing is merged column by column.
	fresh := tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5)

	merged := Accumulate([]*models.Game{stale}, []*models.Game{fresh}, nil)
	require.Len(t, merged, 1)
	assert.Nil(t, merged[0].ATSPick)
	assert.Nil(t, merged[0].TotalLine)
}

func TestAccumulatePreservesRowsOutsideBatch(t *testing.T) {
	existing := []*models.Game{
		tableGame("2024-05-01", "Chicago Cubs", "Atlanta Braves", 4),
	}
	batch := []*models.Game{
		tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5),
	}

	merged := Accumulate(existing, batch, nil)
	assert.Len(t, merged, 2, "rows outside the batch window survive unchanged")
}

func TestAccumulateIsIdempotent(t *testing.T) {
	existing := []*models.Game{
		tableGame("2024-05-01", "Chicago Cubs", "Atlanta Braves", 4),
	}
	batch := []*models.Game{
		tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5),
		tableGame("2024-06-02", "Boston Red Sox", "New York Yankees", 3),
	}

	once := Accumulate(existing, batch, nil)
	twice := Accumulate(once, batch, nil)
	assert.Equal(t, once, twice, "re-running the same batch must converge")
}

func TestAccumulateDeterministicOrder(t *testing.T) {
	batch := []*models.Game{
		tableGame("2024-06-02", "Seattle Mariners", "Houston Astros", 1),
		tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5),
		tableGame("2024-06-01", "Chicago Cubs", "Atlanta Braves", 2),
	}

	merged := Accumulate(nil, batch, nil)
	require.Len(t, merged, 3)
	assert.Equal(t, "2024-06-01", merged[0].Date)
	assert.Equal(t, "Atlanta Braves", merged[0].AwayTeam)
	assert.Equal(t, "New York Yankees", merged[1].AwayTeam)
	assert.Equal(t, "2024-06-02", merged[2].Date)
}

func TestAccumulateDoesNotAliasInputs(t *testing.T) {
	source := tableGame("2024-06-01", "Boston Red Sox", "New York Yankees", 5)
	merged := Accumulate(nil, []*models.Game{source}, nil)
	require.Len(t, merged, 1)

	*source.HomeScore = 99
	assert.Equal(t, 5, *merged[0].HomeScore, "accumulated rows must be deep copies")
}
