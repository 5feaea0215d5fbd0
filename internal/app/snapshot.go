package app

import (
	"context"
	"fmt"

	"quest-client/internal/domain"
)

// QuestView is one quest together with the learner's answers and status.
type QuestView struct {
	Quest   domain.Quest       `json:"quest"`
	Answers []string           `json:"answers"`
	Status  domain.QuestStatus `json:"status"`
}

// ProofView is a stored proof with its decoded public values.
type ProofView struct {
	Artifact domain.ProofArtifact `json:"artifact"`
	Decoded  string               `json:"decoded"`
}

// Snapshot is the full client state as a UI would render it.
type Snapshot struct {
	Quests     []QuestView       `json:"quests"`
	Total      int               `json:"total"`
	Tier       domain.RewardTier `json:"tier"`
	Proof      *ProofView        `json:"proof,omitempty"`
	Submitting bool              `json:"submitting"`
}

// Snapshot reads the current state without mutating it.
func (s *QuestService) Snapshot(ctx context.Context) (Snapshot, error) {
	quests, err := s.Quests(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Quests: make([]QuestView, 0, len(quests)), Submitting: s.Submitting()}
	for _, q := range quests {
		answers, err := s.answers.LoadAnswers(ctx, q.ID, q.SubQuestions())
		if err != nil {
			return Snapshot{}, fmt.Errorf("load answers for quest %d: %w", q.ID, err)
		}
		status, err := s.progress.LoadStatus(ctx, q)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load status for quest %d: %w", q.ID, err)
		}
		snap.Quests = append(snap.Quests, QuestView{Quest: q, Answers: answers, Status: status})
	}

	total, _, err := s.progress.LoadTotal(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load total: %w", err)
	}
	snap.Total = total
	snap.Tier = TierFor(total)

	artifact, ok, err := s.progress.LoadProof(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load proof: %w", err)
	}
	if ok {
		snap.Proof = &ProofView{Artifact: artifact, Decoded: DescribePublicValues(artifact.PublicValues)}
	}
	return snap, nil
}
