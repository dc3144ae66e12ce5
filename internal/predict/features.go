// Package predict trains and applies the per-market classifiers and
// grades their confidence into fireball ratings.
package predict

import "github.com/yourusername/fireball-picks/internal/models"

// featureColumn binds a feature name to its extractor. The candidate set
// is an explicit list: every numeric market column of a game row, never
// the scores, the key columns or anything derived from a prior prediction.
type featureColumn struct {
	name    string
	extract func(*models.Game) *float64
}

var featureColumns = []featureColumn{
	{"ml_home", func(g *models.Game) *float64 { return g.MLHome }},
	{"ml_away", func(g *models.Game) *float64 { return g.MLAway }},
	{"spread_home", func(g *models.Game) *float64 { return g.SpreadHome }},
	{"spread_home_odds", func(g *models.Game) *float64 { return g.SpreadHomeOdds }},
	{"spread_away", func(g *models.Game) *float64 { return g.SpreadAway }},
	{"spread_away_odds", func(g *models.Game) *float64 { return g.SpreadAwayOdds }},
	{"total_line", func(g *models.Game) *float64 { return g.TotalLine }},
	{"over_odds", func(g *models.Game) *float64 { return g.OverOdds }},
	{"under_odds", func(g *models.Game) *float64 { return g.UnderOdds }},
}

// FeatureNames returns the candidate feature schema in column order
func FeatureNames() []string {
	names := make([]string, len(featureColumns))
	for i, col := range featureColumns {
		names[i] = col.name
	}
	return names
}

// featureVector extracts the named features from a game. Missing values
// come back as the second slice; the vector holds zero in their place,
// so callers decide whether zero-filling is acceptable.
func featureVector(game *models.Game, names []string) ([]float64, []string) {
	byName := make(map[string]func(*models.Game) *float64, len(featureColumns))
	for _, col := range featureColumns {
		byName[col.name] = col.extract
	}

	vector := make([]float64, len(names))
	var missing []string
	for i, name := range names {
		extract, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		value := extract(game)
		if value == nil {
			missing = append(missing, name)
			continue
		}
		vector[i] = *value
	}
	return vector, missing
}
