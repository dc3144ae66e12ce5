package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2024-06-01", "2024-06-01", true},
		{"2024-06-01T23:10:00Z", "2024-06-01", true},
		{"06/01/2024", "2024-06-01", true},
		{"  2024-06-01  ", "2024-06-01", true},
		{"June 1st", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeDate(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"red sox", "Red Sox"},
		{"RED SOX", "Red Sox"},
		{"  Boston   Red Sox ", "Boston Red Sox"},
		{"st. louis cardinals", "St. Louis Cardinals"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTeam(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeKeyCaseFolding(t *testing.T) {
	a, ok := NormalizeKey("2024-06-01", "red sox", "YANKEES")
	assert.True(t, ok)
	b, ok := NormalizeKey("2024-06-01T00:00:00Z", "Red Sox", "yankees")
	assert.True(t, ok)
	assert.Equal(t, a, b, "differently cased inputs must produce the same key")
}

func TestNormalizeKeyRejectsEmptyParts(t *testing.T) {
	_, ok := NormalizeKey("2024-06-01", "", "Yankees")
	assert.False(t, ok)
	_, ok = NormalizeKey("not a date", "Red Sox", "Yankees")
	assert.False(t, ok)
	_, ok = NormalizeKey("2024-06-01", "Red Sox", "  ")
	assert.False(t, ok)
}
