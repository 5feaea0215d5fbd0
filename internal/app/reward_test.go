package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		points     int
		background int
		title      string
	}{
		{points: 150, background: 5, title: "Legendary Achievement"},
		{points: 100, background: 5, title: "Legendary Achievement"},
		{points: 99, background: 4, title: "Outstanding Progress"},
		{points: 70, background: 4, title: "Outstanding Progress"},
		{points: 69, background: 3, title: "Great Progress"},
		{points: 40, background: 3, title: "Great Progress"},
		{points: 39, background: 2, title: "Good Start"},
		{points: 20, background: 2, title: "Good Start"},
		{points: 19, background: 1, title: "Beginning Your Journey"},
		{points: 0, background: 1, title: "Beginning Your Journey"},
		{points: -5, background: 1, title: "Beginning Your Journey"},
	}
	for _, tt := range tests {
		tier := TierFor(tt.points)
		assert.Equal(t, tt.background, tier.BackgroundIndex, "points %d", tt.points)
		assert.Equal(t, tt.title, tier.Title, "points %d", tt.points)
		assert.NotEmpty(t, tier.Message)
	}
}

func TestTierForRaw(t *testing.T) {
	assert.Equal(t, 3, TierForRaw("45").BackgroundIndex)
	assert.Equal(t, 3, TierForRaw(" 45\n").BackgroundIndex)
	assert.Equal(t, 1, TierForRaw("").BackgroundIndex)
	assert.Equal(t, 1, TierForRaw("lots").BackgroundIndex)
}

func TestThresholds(t *testing.T) {
	assert.Equal(t, []int{100, 70, 40, 20, 0}, Thresholds())
}
