// Package backtest grades persisted predictions against recomputed
// outcomes and aggregates accuracy by fireball rating.
package backtest

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/models"
	"github.com/yourusername/fireball-picks/internal/predict"
)

// GradeCount accumulates win/loss tallies for one group of graded games
type GradeCount struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Graded returns the number of graded games in the group
func (g GradeCount) Graded() int {
	return g.Wins + g.Losses
}

// Accuracy returns wins over graded games, or nil when the group has no
// graded games (reported as N/A, never a division by zero)
func (g GradeCount) Accuracy() *float64 {
	total := g.Graded()
	if total == 0 {
		return nil
	}
	accuracy := float64(g.Wins) / float64(total)
	return &accuracy
}

// MarketReport aggregates one market's backtest results
type MarketReport struct {
	Market      models.Market     `json:"market"`
	Overall     GradeCount        `json:"overall"`
	ByFireballs map[int]GradeCount `json:"by_fireballs"`
	Pushes      int               `json:"pushes"`
	Ungraded    int               `json:"ungraded"`
}

// Report is the full accuracy report across both markets
type Report struct {
	ATS         MarketReport `json:"ats"`
	Total       MarketReport `json:"total"`
	GamesGraded int          `json:"games_graded"`
	Since       *string      `json:"since,omitempty"`
}

// Options restricts which games are graded
type Options struct {
	// Since, when set, limits grading to games on or after this day.
	Since *time.Time
}

// Evaluate grades every game's predictions for both markets. A game
// counts for a market only when it has a prediction and a derivable
// non-push outcome; a win is an exact match between pick and outcome,
// with no partial credit.
func Evaluate(games []*models.Game, opts Options, logger *logrus.Logger) Report {
	if logger == nil {
		logger = logrus.New()
	}

	report := Report{
		ATS:   newMarketReport(models.MarketATS),
		Total: newMarketReport(models.MarketTotal),
	}
	if opts.Since != nil {
		since := opts.Since.UTC().Format(models.DateLayout)
		report.Since = &since
	}

	graded := make(map[models.GameKey]bool)
	for _, game := range games {
		if report.Since != nil && game.Date < *report.Since {
			continue
		}
		atsGraded := gradeMarket(&report.ATS, game, game.ATSPick, game.ATSConfidence, game.ATSFireballs)
		totalGraded := gradeMarket(&report.Total, game, game.TotalPick, game.TotalConfidence, game.TotalFireballs)
		if atsGraded || totalGraded {
			graded[game.Key()] = true
		}
	}
	report.GamesGraded = len(graded)

	logger.WithFields(logrus.Fields{
		"games":        len(games),
		"games_graded": report.GamesGraded,
		"ats_graded":   report.ATS.Overall.Graded(),
		"total_graded": report.Total.Overall.Graded(),
	}).Info("Backtest evaluation complete")

	return report
}

func newMarketReport(market models.Market) MarketReport {
	byFireballs := make(map[int]GradeCount, 5)
	for rating := 1; rating <= 5; rating++ {
		byFireballs[rating] = GradeCount{}
	}
	return MarketReport{Market: market, ByFireballs: byFireballs}
}

func gradeMarket(report *MarketReport, game *models.Game, pick *models.Pick, confidence *float64, fireballs *int) bool {
	if pick == nil {
		return false
	}
	outcome, defined := game.Outcome(report.Market)
	if !defined {
		report.Ungraded++
		return false
	}
	if outcome == models.OutcomePush {
		report.Pushes++
		return false
	}

	rating := 1
	switch {
	case fireballs != nil:
		rating = *fireballs
	case confidence != nil:
		rating = predict.Fireballs(*confidence)
	}

	count := report.ByFireballs[rating]
	if pick.Agrees(outcome) {
		report.Overall.Wins++
		count.Wins++
	} else {
		report.Overall.Losses++
		count.Losses++
	}
	report.ByFireballs[rating] = count
	return true
}
