package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireballs(t *testing.T) {
	tests := []struct {
		confidence float64
		want       int
	}{
		{1.00, 5},
		{0.95, 5},
		{0.949, 4},
		{0.85, 4},
		{0.84, 3},
		{0.75, 3}, // lower bounds are inclusive
		{0.7499, 2},
		{0.60, 2},
		{0.5999, 1},
		{0.50, 1},
		{0.0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fireballs(tt.confidence), "confidence=%v", tt.confidence)
	}
}

func TestFireballString(t *testing.T) {
	assert.Equal(t, "🔥🔥🔥", FireballString(3))
	assert.Equal(t, "🔥", FireballString(0), "ratings clamp to the 1..5 range")
	assert.Equal(t, "🔥🔥🔥🔥🔥", FireballString(9))
}
