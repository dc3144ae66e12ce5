// Package dataset builds and maintains the unified game table: it joins
// the results and odds series, accumulates batches into persisted state
// and splits the table for training.
package dataset

import (
	"strings"
	"time"

	"github.com/yourusername/fireball-picks/internal/models"
)

// dateLayouts are the input formats accepted for game dates, tried in order.
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"01/02/2006",
}

// NormalizeDate converts a raw date string to the canonical calendar-day
// form. Returns false when no known layout matches.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(models.DateLayout), true
		}
	}
	return "", false
}

// NormalizeTeam converts a team identifier to its canonical display form:
// whitespace trimmed and case folded to title case, so "red sox" and
// "RED SOX" join against the same key.
func NormalizeTeam(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(raw), " ")
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// NormalizeKey builds the canonical join key from raw fields
func NormalizeKey(date, home, away string) (models.GameKey, bool) {
	day, ok := NormalizeDate(date)
	if !ok {
		return models.GameKey{}, false
	}
	key := models.GameKey{
		Date:     day,
		HomeTeam: NormalizeTeam(home),
		AwayTeam: NormalizeTeam(away),
	}
	if key.HomeTeam == "" || key.AwayTeam == "" {
		return models.GameKey{}, false
	}
	return key, true
}
