package predict

import "strings"

// Fireball rating thresholds, evaluated highest first. Intervals are
// closed at the lower bound: a confidence of exactly 0.75 rates three
// fireballs.
const (
	fiveFireballs  = 0.95
	fourFireballs  = 0.85
	threeFireballs = 0.75
	twoFireballs   = 0.60
)

// Fireballs grades a confidence value into one of five ordinal ratings.
// Every value in [0,1] maps to exactly one rating.
func Fireballs(confidence float64) int {
	switch {
	case confidence >= fiveFireballs:
		return 5
	case confidence >= fourFireballs:
		return 4
	case confidence >= threeFireballs:
		return 3
	case confidence >= twoFireballs:
		return 2
	default:
		return 1
	}
}

// FireballString renders a rating for display, e.g. 3 -> "🔥🔥🔥"
func FireballString(rating int) string {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("🔥", rating)
}
