package app

import "quest-client/internal/domain"

// ApplyScore merges a reported total into the stored one. A missing report
// leaves the total alone; any change invalidates the cached proof.
func ApplyScore(previous int, hasPrevious bool, reported *int) domain.ScoreUpdate {
	update := domain.ScoreUpdate{Previous: previous, Total: previous}
	if reported == nil {
		return update
	}
	if hasPrevious && *reported == previous {
		return update
	}
	update.Total = *reported
	update.Changed = true
	update.InvalidateProof = true
	return update
}
