package dataset

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/datasource"
	"github.com/yourusername/fireball-picks/internal/models"
)

// Merge reconciles the results series with the odds series into unified
// game rows. Both sides are key-normalized before the join; results are
// the primary side, so every result row survives (with nil odds columns
// when no quote matched) while odds rows without a matching result are
// dropped. Returns a SchemaError when a row on either side lacks a usable
// three-part key.
func Merge(results []datasource.ResultRow, odds []datasource.OddsRow, logger *logrus.Logger) ([]*models.Game, error) {
	if logger == nil {
		logger = logrus.New()
	}

	oddsByKey := make(map[models.GameKey]datasource.OddsRow, len(odds))
	for _, row := range odds {
		key, ok := NormalizeKey(row.Date, row.HomeTeam, row.AwayTeam)
		if !ok {
			return nil, keySchemaError("odds", row.Date, row.HomeTeam, row.AwayTeam)
		}
		oddsByKey[key] = row
	}

	games := make([]*models.Game, 0, len(results))
	matched := 0
	for _, row := range results {
		key, ok := NormalizeKey(row.Date, row.HomeTeam, row.AwayTeam)
		if !ok {
			return nil, keySchemaError("results", row.Date, row.HomeTeam, row.AwayTeam)
		}

		game := &models.Game{
			Date:       key.Date,
			HomeTeam:   key.HomeTeam,
			AwayTeam:   key.AwayTeam,
			HomeRecord: row.HomeRecord,
			AwayRecord: row.AwayRecord,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
		}

		if quote, ok := oddsByKey[key]; ok {
			applyOdds(game, quote)
			matched++
		}
		games = append(games, game)
	}

	logger.WithFields(logrus.Fields{
		"results":      len(results),
		"odds":         len(odds),
		"matched_odds": matched,
	}).Debug("Merged results with odds")

	return games, nil
}

func applyOdds(game *models.Game, quote datasource.OddsRow) {
	if quote.Bookmaker != "" {
		bookmaker := quote.Bookmaker
		game.Bookmaker = &bookmaker
	}
	game.MLHome = decimalToFloat(quote.MLHome)
	game.MLAway = decimalToFloat(quote.MLAway)
	game.SpreadHome = quote.SpreadHome
	game.SpreadHomeOdds = decimalToFloat(quote.SpreadHomeOdds)
	game.SpreadAway = quote.SpreadAway
	game.SpreadAwayOdds = decimalToFloat(quote.SpreadAwayOdds)
	game.TotalLine = quote.TotalLine
	game.OverOdds = decimalToFloat(quote.OverOdds)
	game.UnderOdds = decimalToFloat(quote.UnderOdds)
}

func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func keySchemaError(table, date, home, away string) *models.SchemaError {
	missing := make([]string, 0, 3)
	if _, ok := NormalizeDate(date); !ok {
		missing = append(missing, "game_date")
	}
	if NormalizeTeam(home) == "" {
		missing = append(missing, "home_team")
	}
	if NormalizeTeam(away) == "" {
		missing = append(missing, "away_team")
	}
	return models.NewSchemaError(table, missing...)
}
