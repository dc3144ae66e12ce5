package dataset

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/fireball-picks/internal/datasource"
	"github.com/yourusername/fireball-picks/internal/models"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func resultRow(date, home, away string, homeScore, awayScore int) datasource.ResultRow {
	return datasource.ResultRow{
		Date:      date,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: intPtr(homeScore),
		AwayScore: intPtr(awayScore),
	}
}

func oddsRow(date, home, away string) datasource.OddsRow {
	return datasource.OddsRow{
		Date:           date,
		HomeTeam:       home,
		AwayTeam:       away,
		Bookmaker:      "fanduel",
		MLHome:         decPtr(1.80),
		MLAway:         decPtr(2.05),
		SpreadHome:     floatPtr(-1.5),
		SpreadHomeOdds: decPtr(2.10),
		SpreadAway:     floatPtr(1.5),
		SpreadAwayOdds: decPtr(1.74),
		TotalLine:      floatPtr(8.5),
		OverOdds:       decPtr(1.91),
		UnderOdds:      decPtr(1.91),
	}
}

func TestMergeJoinsOnNormalizedKey(t *testing.T) {
	results := []datasource.ResultRow{
		resultRow("2024-06-01", "Boston Red Sox", "New York Yankees", 5, 3),
	}
	// Different casing and a timestamped date still join.
	odds := []datasource.OddsRow{
		oddsRow("2024-06-01T16:00:00Z", "boston red sox", "NEW YORK YANKEES"),
	}

	games, err := Merge(results, odds, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, "2024-06-01", game.Date)
	assert.Equal(t, "Boston Red Sox", game.HomeTeam)
	assert.Equal(t, "New York Yankees", game.AwayTeam)
	assert.Equal(t, 5, *game.HomeScore)
	require.NotNil(t, game.SpreadHome)
	assert.Equal(t, -1.5, *game.SpreadHome)
	require.NotNil(t, game.TotalLine)
	assert.Equal(t, 8.5, *game.TotalLine)
	require.NotNil(t, game.Bookmaker)
	assert.Equal(t, "fanduel", *game.Bookmaker)
	require.NotNil(t, game.MLHome)
	assert.InDelta(t, 1.80, *game.MLHome, 1e-9)
}

func TestMergeKeepsResultsWithoutOdds(t *testing.T) {
	results := []datasource.ResultRow{
		resultRow("2024-06-01", "Boston Red Sox", "New York Yankees", 5, 3),
		resultRow("2024-06-01", "Chicago Cubs", "Atlanta Braves", 2, 6),
	}
	odds := []datasource.OddsRow{
		oddsRow("2024-06-01", "Boston Red Sox", "New York Yankees"),
	}

	games, err := Merge(results, odds, nil)
	require.NoError(t, err)
	require.Len(t, games, 2, "results side survives even without a matching quote")

	var unquoted *models.Game
	for _, g := range games {
		if g.HomeTeam == "Chicago Cubs" {
			unquoted = g
		}
	}
	require.NotNil(t, unquoted)
	assert.Nil(t, unquoted.SpreadHome)
	assert.Nil(t, unquoted.TotalLine)
	assert.Nil(t, unquoted.Bookmaker)
}

func TestMergeDropsUnmatchedOdds(t *testing.T) {
	results := []datasource.ResultRow{
		resultRow("2024-06-01", "Boston Red Sox", "New York Yankees", 5, 3),
	}
	odds := []datasource.OddsRow{
		oddsRow("2024-06-01", "Boston Red Sox", "New York Yankees"),
		oddsRow("2024-06-02", "Seattle Mariners", "Houston Astros"),
	}

	games, err := Merge(results, odds, nil)
	require.NoError(t, err)
	assert.Len(t, games, 1, "odds without a matching result never create a row")
}

func TestMergeBadKeyIsSchemaError(t *testing.T) {
	results := []datasource.ResultRow{
		{Date: "2024-06-01", HomeTeam: "", AwayTeam: "New York Yankees"},
	}

	_, err := Merge(results, nil, nil)
	require.Error(t, err)

	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "results", schemaErr.Table)
	assert.Contains(t, schemaErr.Missing, "home_team")
}

func TestMergeBadOddsDateIsSchemaError(t *testing.T) {
	odds := []datasource.OddsRow{
		{Date: "whenever", HomeTeam: "Boston Red Sox", AwayTeam: "New York Yankees"},
	}

	_, err := Merge(nil, odds, nil)
	require.Error(t, err)

	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "odds", schemaErr.Table)
	assert.Contains(t, schemaErr.Missing, "game_date")
}
