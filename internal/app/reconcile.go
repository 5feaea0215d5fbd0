package app

import (
	"fmt"

	"quest-client/internal/domain"
)

const (
	msgAllProved    = "All subquestions proved"
	msgAllIncorrect = "All subquestions are incorrect"
)

// Reconciliation is the next status table plus any quests that matched no rule.
type Reconciliation struct {
	Statuses map[int]domain.QuestStatus
	Gaps     []domain.ValidationGap
}

// Reconcile maps a verification response onto the next status of every quest.
// It is pure: prior is only read, to carry a status over when a quest's verdicts
// are inconsistent with its multiplicity.
func Reconcile(quests []domain.Quest, prior map[int]domain.QuestStatus, resp domain.VerificationResponse) Reconciliation {
	completed := groupByQuest(resp.CompletedQuests)
	failed := groupByQuest(resp.FailedQuests)

	out := Reconciliation{Statuses: make(map[int]domain.QuestStatus, len(quests))}
	for _, q := range quests {
		ok, bad := completed[q.ID], failed[q.ID]
		if len(ok) == 0 && len(bad) == 0 {
			// Not part of this round: never let a stale status survive.
			out.Statuses[q.ID] = unsetStatus(q)
			out.Gaps = append(out.Gaps, domain.ValidationGap{QuestID: q.ID, Multiplicity: q.SubQuestions()})
			continue
		}

		if !q.MultiPart() {
			out.Statuses[q.ID] = reconcileSingle(q, ok, bad)
			continue
		}

		status, matched := reconcileMulti(q, ok, bad)
		if !matched {
			out.Gaps = append(out.Gaps, domain.ValidationGap{
				QuestID:      q.ID,
				Multiplicity: q.SubQuestions(),
				Successes:    len(ok),
				Failures:     len(bad),
			})
			if p, has := prior[q.ID]; has {
				status = p
			} else {
				status = unsetStatus(q)
			}
		}
		out.Statuses[q.ID] = status
	}
	return out
}

func reconcileSingle(q domain.Quest, ok, bad []domain.QuestVerdict) domain.QuestStatus {
	if len(ok) > 0 {
		return domain.QuestStatus{
			QuestID: q.ID,
			State:   domain.StateCompleted,
			Points:  ok[0].Points,
			Message: ok[0].Message,
		}
	}
	return domain.QuestStatus{
		QuestID: q.ID,
		State:   domain.StateFailed,
		Message: bad[0].Message,
	}
}

// reconcileMulti applies the counting tie-break; matched is false when the
// verdicts fit none of the completed, failed or partial shapes.
func reconcileMulti(q domain.Quest, ok, bad []domain.QuestVerdict) (domain.QuestStatus, bool) {
	m := q.SubQuestions()
	status := domain.QuestStatus{QuestID: q.ID, SubVerdicts: make([]domain.Verdict, m)}

	switch {
	case len(ok) == m:
		status.State = domain.StateCompleted
		status.Message = msgAllProved
		status.Points = sumPoints(ok)
		fill(status.SubVerdicts, domain.VerdictCorrect)
	case len(bad) == m:
		status.State = domain.StateFailed
		status.Message = msgAllIncorrect
		fill(status.SubVerdicts, domain.VerdictIncorrect)
	case len(ok) > 0:
		status.State = domain.StatePartial
		status.Message = fmt.Sprintf("%d of %d subquestions proved", len(ok), m)
		status.Points = sumPoints(ok)
		mark(status.SubVerdicts, ok, domain.VerdictCorrect)
		mark(status.SubVerdicts, bad, domain.VerdictIncorrect)
	default:
		return domain.QuestStatus{}, false
	}
	return status, true
}

func unsetStatus(q domain.Quest) domain.QuestStatus {
	status := domain.QuestStatus{QuestID: q.ID}
	if q.MultiPart() {
		status.SubVerdicts = make([]domain.Verdict, q.SubQuestions())
	}
	return status
}

func groupByQuest(verdicts []domain.QuestVerdict) map[int][]domain.QuestVerdict {
	grouped := make(map[int][]domain.QuestVerdict)
	for _, v := range verdicts {
		grouped[v.QuestID] = append(grouped[v.QuestID], v)
	}
	return grouped
}

func sumPoints(verdicts []domain.QuestVerdict) int {
	total := 0
	for _, v := range verdicts {
		total += v.Points
	}
	return total
}

func fill(flags []domain.Verdict, v domain.Verdict) {
	for i := range flags {
		flags[i] = v
	}
}

// mark sets the flag of every 1-based sub-question id in range.
func mark(flags []domain.Verdict, verdicts []domain.QuestVerdict, v domain.Verdict) {
	for _, entry := range verdicts {
		idx := entry.SubQuestionID - 1
		if idx >= 0 && idx < len(flags) {
			flags[idx] = v
		}
	}
}
