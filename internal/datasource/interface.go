package datasource

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ResultsSource defines the interface for fetching final scores from an
// external scoreboard provider
type ResultsSource interface {
	// FetchResults retrieves settled and in-progress games for a single day.
	// A day with no games returns an empty slice, not an error.
	FetchResults(ctx context.Context, day time.Time) ([]ResultRow, error)

	// Name returns the name of the source
	Name() string
}

// OddsSource defines the interface for fetching market lines from an
// external odds provider
type OddsSource interface {
	// FetchOdds retrieves the odds snapshot for a single day. Matchups
	// with no quote are simply absent from the result.
	FetchOdds(ctx context.Context, day time.Time) ([]OddsRow, error)

	// Name returns the name of the source
	Name() string
}

// ResultRow is one game result as produced by a results source, before
// key normalization
type ResultRow struct {
	Date       string  `json:"date"`
	HomeTeam   string  `json:"home_team"`
	AwayTeam   string  `json:"away_team"`
	HomeRecord *string `json:"home_record"`
	AwayRecord *string `json:"away_record"`
	HomeScore  *int    `json:"home_score"`
	AwayScore  *int    `json:"away_score"`
}

// OddsRow is one matchup's market lines as produced by an odds source.
// Prices arrive as decimal odds and stay decimal until normalization.
type OddsRow struct {
	Date           string           `json:"date"`
	HomeTeam       string           `json:"home_team"`
	AwayTeam       string           `json:"away_team"`
	Bookmaker      string           `json:"bookmaker"`
	MLHome         *decimal.Decimal `json:"ml_home"`
	MLAway         *decimal.Decimal `json:"ml_away"`
	SpreadHome     *float64         `json:"spread_home"`
	SpreadHomeOdds *decimal.Decimal `json:"spread_home_odds"`
	SpreadAway     *float64         `json:"spread_away"`
	SpreadAwayOdds *decimal.Decimal `json:"spread_away_odds"`
	TotalLine      *float64         `json:"total_line"`
	OverOdds       *decimal.Decimal `json:"over_odds"`
	UnderOdds      *decimal.Decimal `json:"under_odds"`
}
