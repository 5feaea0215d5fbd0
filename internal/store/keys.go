package store

import (
	"fmt"

	"quest-client/internal/domain"
)

// Global keys.
const (
	KeyTotalPoints        = "total_points"
	KeyVerificationResult = "verification_result"
	KeyVerificationKey    = "vk"
	KeyPublicValues       = "public_values"
	KeyLastProvedPoints   = "last_proved_points"
)

func answersKey(questID int) string   { return fmt.Sprintf("quest_%d_answers", questID) }
func completedKey(questID int) string { return fmt.Sprintf("quest_%d_completed", questID) }
func failedKey(questID int) string    { return fmt.Sprintf("quest_%d_failed", questID) }
func messageKey(questID int) string   { return fmt.Sprintf("quest_%d_message", questID) }
func pointsKey(questID int) string    { return fmt.Sprintf("quest_%d_points", questID) }
func partialKey(questID int) string   { return fmt.Sprintf("quest_%d_partial", questID) }

// sub is 1-based.
func subCorrectKey(questID, sub int) string {
	return fmt.Sprintf("quest_%d_sub_%d_correct", questID, sub)
}
func subWrongKey(questID, sub int) string { return fmt.Sprintf("quest_%d_sub_%d_wrong", questID, sub) }

func proofKeys() []string {
	return []string{KeyVerificationResult, KeyVerificationKey, KeyPublicValues, KeyLastProvedPoints}
}

// statusKeys lists every key a reconciled status of q may occupy.
func statusKeys(q domain.Quest) []string {
	keys := []string{completedKey(q.ID), failedKey(q.ID), messageKey(q.ID), pointsKey(q.ID)}
	if q.MultiPart() {
		keys = append(keys, partialKey(q.ID))
		for n := 1; n <= q.SubQuestions(); n++ {
			keys = append(keys, subCorrectKey(q.ID, n), subWrongKey(q.ID, n))
		}
	}
	return keys
}

// AllKeys enumerates every key the client may persist for the given catalog.
func AllKeys(quests []domain.Quest) []string {
	keys := []string{KeyTotalPoints}
	keys = append(keys, proofKeys()...)
	for _, q := range quests {
		keys = append(keys, answersKey(q.ID))
		keys = append(keys, statusKeys(q)...)
	}
	return keys
}
