package app

import "quest-client/internal/domain"

// WrongAnswer replaces empty slots so every sub-question is graded and fails deterministically.
const WrongAnswer = "wrong answer"

// BuildBatch produces one entry per sub-question of every quest. answers is
// keyed by quest id; a missing or short slice counts as empty answers.
func BuildBatch(quests []domain.Quest, answers map[int][]string) []domain.AnswerEntry {
	entries := make([]domain.AnswerEntry, 0, len(quests))
	for _, q := range quests {
		saved := answers[q.ID]
		for i := 0; i < q.SubQuestions(); i++ {
			text := ""
			if i < len(saved) {
				text = saved[i]
			}
			if text == "" {
				text = WrongAnswer
			}
			entry := domain.AnswerEntry{QuestID: q.ID, Answer: text}
			if q.MultiPart() {
				entry.SubQuestionID = i + 1
			}
			entries = append(entries, entry)
		}
	}
	return entries
}
