package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-day format used as part of the game key.
const DateLayout = "2006-01-02"

// GameKey uniquely identifies a game within the unified table.
type GameKey struct {
	Date     string
	HomeTeam string
	AwayTeam string
}

// String returns a printable representation of the key
func (k GameKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Date, k.AwayTeam, k.HomeTeam)
}

// Game represents one row of the unified table: a single MLB game with
// its final score (once settled), the market lines quoted for it, and
// the model's current picks. Nullable columns are pointers.
type Game struct {
	Date     string `db:"game_date" json:"game_date" validate:"required,datetime=2006-01-02"`
	HomeTeam string `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam string `db:"away_team" json:"away_team" validate:"required"`

	HomeRecord *string `db:"home_record" json:"home_record"`
	AwayRecord *string `db:"away_record" json:"away_record"`
	HomeScore  *int    `db:"home_score" json:"home_score"`
	AwayScore  *int    `db:"away_score" json:"away_score"`

	Bookmaker      *string  `db:"bookmaker" json:"bookmaker"`
	MLHome         *float64 `db:"ml_home" json:"ml_home"`
	MLAway         *float64 `db:"ml_away" json:"ml_away"`
	SpreadHome     *float64 `db:"spread_home" json:"spread_home"`
	SpreadHomeOdds *float64 `db:"spread_home_odds" json:"spread_home_odds"`
	SpreadAway     *float64 `db:"spread_away" json:"spread_away"`
	SpreadAwayOdds *float64 `db:"spread_away_odds" json:"spread_away_odds"`
	TotalLine      *float64 `db:"total_line" json:"total_line"`
	OverOdds       *float64 `db:"over_odds" json:"over_odds"`
	UnderOdds      *float64 `db:"under_odds" json:"under_odds"`

	// Prediction columns, overwritten wholesale on every scoring run.
	ATSPick         *Pick    `db:"ats_pick" json:"ats_pick"`
	ATSConfidence   *float64 `db:"ats_confidence" json:"ats_confidence"`
	ATSFireballs    *int     `db:"ats_fireballs" json:"ats_fireballs"`
	TotalPick       *Pick    `db:"total_pick" json:"total_pick"`
	TotalConfidence *float64 `db:"total_confidence" json:"total_confidence"`
	TotalFireballs  *int     `db:"total_fireballs" json:"total_fireballs"`
}

// Key returns the natural key of the game
func (g *Game) Key() GameKey {
	return GameKey{Date: g.Date, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam}
}

// ParseDate parses the game date as a UTC calendar day
func (g *Game) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, g.Date)
}

// HasFinalScore checks if both final scores are present
func (g *Game) HasFinalScore() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// IsComplete checks if the game is fully settled with both market lines,
// which makes it eligible for training and grading
func (g *Game) IsComplete() bool {
	return g.HasFinalScore() && g.SpreadHome != nil && g.TotalLine != nil
}

// ClearPredictions resets all prediction columns
func (g *Game) ClearPredictions() {
	g.ATSPick = nil
	g.ATSConfidence = nil
	g.ATSFireballs = nil
	g.TotalPick = nil
	g.TotalConfidence = nil
	g.TotalFireballs = nil
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.HomeRecord = cloneString(g.HomeRecord)
	clone.AwayRecord = cloneString(g.AwayRecord)
	clone.HomeScore = cloneInt(g.HomeScore)
	clone.AwayScore = cloneInt(g.AwayScore)
	clone.Bookmaker = cloneString(g.Bookmaker)
	clone.MLHome = cloneFloat(g.MLHome)
	clone.MLAway = cloneFloat(g.MLAway)
	clone.SpreadHome = cloneFloat(g.SpreadHome)
	clone.SpreadHomeOdds = cloneFloat(g.SpreadHomeOdds)
	clone.SpreadAway = cloneFloat(g.SpreadAway)
	clone.SpreadAwayOdds = cloneFloat(g.SpreadAwayOdds)
	clone.TotalLine = cloneFloat(g.TotalLine)
	clone.OverOdds = cloneFloat(g.OverOdds)
	clone.UnderOdds = cloneFloat(g.UnderOdds)
	clone.ATSPick = clonePick(g.ATSPick)
	clone.ATSConfidence = cloneFloat(g.ATSConfidence)
	clone.ATSFireballs = cloneInt(g.ATSFireballs)
	clone.TotalPick = clonePick(g.TotalPick)
	clone.TotalConfidence = cloneFloat(g.TotalConfidence)
	clone.TotalFireballs = cloneInt(g.TotalFireballs)
	return &clone
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func clonePick(v *Pick) *Pick {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
