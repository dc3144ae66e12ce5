package models

// Market identifies one of the two wagering markets the system grades
type Market string

const (
	MarketATS   Market = "ATS"
	MarketTotal Market = "TOTAL"
)

// Pick is a model's predicted side for a market
type Pick string

const (
	PickHome  Pick = "Home"
	PickAway  Pick = "Away"
	PickOver  Pick = "Over"
	PickUnder Pick = "Under"
)

// Outcome is the ground-truth result of a market, recomputed from the
// current scores and lines rather than persisted
type Outcome string

const (
	OutcomeHome  Outcome = "Home"
	OutcomeAway  Outcome = "Away"
	OutcomeOver  Outcome = "Over"
	OutcomeUnder Outcome = "Under"
	OutcomePush  Outcome = "Push"
)

// ATSOutcome derives the against-the-spread result. The home side covers
// when home score plus the home spread beats the away score; meeting the
// line exactly is a push. Returns false when a score or the spread is
// missing.
func (g *Game) ATSOutcome() (Outcome, bool) {
	if !g.HasFinalScore() || g.SpreadHome == nil {
		return "", false
	}
	adjusted := float64(*g.HomeScore) + *g.SpreadHome
	away := float64(*g.AwayScore)
	switch {
	case adjusted > away:
		return OutcomeHome, true
	case adjusted < away:
		return OutcomeAway, true
	default:
		return OutcomePush, true
	}
}

// TotalOutcome derives the total-runs result. Combined score above the
// line is Over, below is Under, exactly on the line is a push. Returns
// false when a score or the total line is missing.
func (g *Game) TotalOutcome() (Outcome, bool) {
	if !g.HasFinalScore() || g.TotalLine == nil {
		return "", false
	}
	combined := float64(*g.HomeScore + *g.AwayScore)
	switch {
	case combined > *g.TotalLine:
		return OutcomeOver, true
	case combined < *g.TotalLine:
		return OutcomeUnder, true
	default:
		return OutcomePush, true
	}
}

// Outcome derives the result for the given market
func (g *Game) Outcome(market Market) (Outcome, bool) {
	if market == MarketTotal {
		return g.TotalOutcome()
	}
	return g.ATSOutcome()
}

// Agrees checks whether a pick matches a derived outcome
func (p Pick) Agrees(o Outcome) bool {
	return string(p) == string(o)
}
