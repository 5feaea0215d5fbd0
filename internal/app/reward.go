package app

import (
	"strconv"
	"strings"

	"quest-client/internal/domain"
)

// rewardTiers is ordered from the highest threshold down; the first match wins.
var rewardTiers = []domain.RewardTier{
	{
		Threshold:       100,
		BackgroundIndex: 5,
		Title:           "Legendary Achievement",
		Message:         "You've mastered SP1 completely! Your dedication and skill are truly remarkable. You're now ready to take on any blockchain challenge that comes your way!",
	},
	{
		Threshold:       70,
		BackgroundIndex: 4,
		Title:           "Outstanding Progress",
		Message:         "You're showing exceptional understanding of SP1! Keep pushing forward, you're very close to complete mastery!",
	},
	{
		Threshold:       40,
		BackgroundIndex: 3,
		Title:           "Great Progress",
		Message:         "You're making solid progress with SP1! You've grasped the core concepts and are well on your way to becoming an expert.",
	},
	{
		Threshold:       20,
		BackgroundIndex: 2,
		Title:           "Good Start",
		Message:         "You're off to a promising start with SP1! Keep learning and practicing, you're on the right track.",
	},
	{
		Threshold:       0,
		BackgroundIndex: 1,
		Title:           "Beginning Your Journey",
		Message:         "Every expert was once a beginner. Keep working on the quests, and you'll see your knowledge grow!",
	},
}

// TierFor returns the reward tier for an aggregate score.
func TierFor(points int) domain.RewardTier {
	for _, tier := range rewardTiers {
		if points >= tier.Threshold {
			return tier
		}
	}
	// Negative scores still get the entry tier.
	return rewardTiers[len(rewardTiers)-1]
}

// TierForRaw resolves a persisted score string; anything non-numeric counts as 0.
func TierForRaw(raw string) domain.RewardTier {
	points, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		points = 0
	}
	return TierFor(points)
}

// Thresholds lists the tier boundaries, highest first.
func Thresholds() []int {
	out := make([]int, 0, len(rewardTiers))
	for _, tier := range rewardTiers {
		out = append(out, tier.Threshold)
	}
	return out
}
