package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"quest-client/internal/domain"
)

// Backend is a flat string key/value store. Write must apply deletes before
// sets and must be atomic.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, set map[string]string, del []string) error
}

// ProgressStore lays answers, statuses, the total and the proof out over a Backend.
// It implements both app.AnswerRepository and app.ProgressRepository.
type ProgressStore struct {
	backend Backend
}

func NewProgressStore(backend Backend) *ProgressStore {
	return &ProgressStore{backend: backend}
}

func (s *ProgressStore) SaveAnswer(ctx context.Context, questID, subIndex int, text string) error {
	if subIndex < 0 {
		return fmt.Errorf("%w: %d", domain.ErrSubQuestionOutOfRange, subIndex)
	}
	answers, err := s.rawAnswers(ctx, questID)
	if err != nil {
		return err
	}
	for len(answers) <= subIndex {
		answers = append(answers, "")
	}
	answers[subIndex] = text

	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return s.backend.Write(ctx, map[string]string{answersKey(questID): string(data)}, nil)
}

func (s *ProgressStore) LoadAnswers(ctx context.Context, questID, multiplicity int) ([]string, error) {
	if multiplicity < 1 {
		multiplicity = 1
	}
	stored, err := s.rawAnswers(ctx, questID)
	if err != nil {
		return nil, err
	}
	answers := make([]string, multiplicity)
	copy(answers, stored)
	return answers, nil
}

func (s *ProgressStore) ClearAnswers(ctx context.Context, questID int) error {
	return s.backend.Write(ctx, nil, []string{answersKey(questID)})
}

func (s *ProgressStore) rawAnswers(ctx context.Context, questID int) ([]string, error) {
	raw, ok, err := s.backend.Get(ctx, answersKey(questID))
	if err != nil {
		return nil, fmt.Errorf("get answers: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var answers []string
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("decode answers for quest %d: %w", questID, err)
	}
	return answers, nil
}

func (s *ProgressStore) LoadStatus(ctx context.Context, q domain.Quest) (domain.QuestStatus, error) {
	status := domain.QuestStatus{QuestID: q.ID}

	completed, err := s.flag(ctx, completedKey(q.ID))
	if err != nil {
		return status, err
	}
	failed, err := s.flag(ctx, failedKey(q.ID))
	if err != nil {
		return status, err
	}
	partial := false
	if q.MultiPart() {
		if partial, err = s.flag(ctx, partialKey(q.ID)); err != nil {
			return status, err
		}
	}

	switch {
	case completed:
		status.State = domain.StateCompleted
	case failed:
		status.State = domain.StateFailed
	case partial:
		status.State = domain.StatePartial
	}

	if msg, ok, err := s.backend.Get(ctx, messageKey(q.ID)); err != nil {
		return status, err
	} else if ok {
		status.Message = msg
	}
	if raw, ok, err := s.backend.Get(ctx, pointsKey(q.ID)); err != nil {
		return status, err
	} else if ok {
		status.Points, _ = strconv.Atoi(raw)
	}

	if q.MultiPart() {
		status.SubVerdicts = make([]domain.Verdict, q.SubQuestions())
		for n := 1; n <= q.SubQuestions(); n++ {
			correct, err := s.flag(ctx, subCorrectKey(q.ID, n))
			if err != nil {
				return status, err
			}
			wrong, err := s.flag(ctx, subWrongKey(q.ID, n))
			if err != nil {
				return status, err
			}
			switch {
			case correct:
				status.SubVerdicts[n-1] = domain.VerdictCorrect
			case wrong:
				status.SubVerdicts[n-1] = domain.VerdictIncorrect
			}
		}
	}
	return status, nil
}

func (s *ProgressStore) flag(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return ok && v == "true", nil
}

func (s *ProgressStore) LoadTotal(ctx context.Context) (int, bool, error) {
	raw, ok, err := s.backend.Get(ctx, KeyTotalPoints)
	if err != nil {
		return 0, false, fmt.Errorf("get total: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	total, err := strconv.Atoi(raw)
	if err != nil {
		// A corrupt total reads as no total at all.
		return 0, false, nil
	}
	return total, true, nil
}

// LoadProof returns the stored artifact only while it is bound to the current total.
func (s *ProgressStore) LoadProof(ctx context.Context) (domain.ProofArtifact, bool, error) {
	var artifact domain.ProofArtifact
	vk, ok, err := s.backend.Get(ctx, KeyVerificationKey)
	if err != nil || !ok {
		return artifact, false, err
	}
	artifact.VerificationKey = vk
	if artifact.VerificationResult, _, err = s.backend.Get(ctx, KeyVerificationResult); err != nil {
		return artifact, false, err
	}
	if artifact.PublicValues, _, err = s.backend.Get(ctx, KeyPublicValues); err != nil {
		return artifact, false, err
	}

	proved, hasProved, err := s.backend.Get(ctx, KeyLastProvedPoints)
	if err != nil {
		return artifact, false, err
	}
	if hasProved {
		total, _, err := s.LoadTotal(ctx)
		if err != nil {
			return artifact, false, err
		}
		if proved != strconv.Itoa(total) {
			return domain.ProofArtifact{}, false, nil
		}
	}
	return artifact, true, nil
}

// CommitRound clears every status key of every quest and writes the new round
// in one atomic write, dropping the proof when the score moved.
func (s *ProgressStore) CommitRound(ctx context.Context, quests []domain.Quest, round domain.Round) error {
	var del []string
	set := make(map[string]string)
	for _, q := range quests {
		del = append(del, statusKeys(q)...)
		if status, ok := round.Statuses[q.ID]; ok {
			encodeStatus(q, status, set)
		}
	}
	if round.Score.Changed {
		set[KeyTotalPoints] = strconv.Itoa(round.Score.Total)
	}
	if round.Score.InvalidateProof {
		del = append(del, proofKeys()...)
	}
	return s.backend.Write(ctx, set, del)
}

func encodeStatus(q domain.Quest, status domain.QuestStatus, set map[string]string) {
	if status.State == domain.StateUnset {
		return
	}
	set[completedKey(q.ID)] = strconv.FormatBool(status.State == domain.StateCompleted)
	set[failedKey(q.ID)] = strconv.FormatBool(status.State == domain.StateFailed)
	set[pointsKey(q.ID)] = strconv.Itoa(status.Points)
	if status.Message != "" {
		set[messageKey(q.ID)] = status.Message
	}
	if !q.MultiPart() {
		return
	}
	set[partialKey(q.ID)] = strconv.FormatBool(status.State == domain.StatePartial)
	for i, v := range status.SubVerdicts {
		if v == domain.VerdictUnknown || i >= q.SubQuestions() {
			continue
		}
		set[subCorrectKey(q.ID, i+1)] = strconv.FormatBool(v == domain.VerdictCorrect)
		set[subWrongKey(q.ID, i+1)] = strconv.FormatBool(v == domain.VerdictIncorrect)
	}
}

func (s *ProgressStore) SaveProof(ctx context.Context, artifact domain.ProofArtifact, points int) error {
	return s.backend.Write(ctx, map[string]string{
		KeyVerificationResult: artifact.VerificationResult,
		KeyVerificationKey:    artifact.VerificationKey,
		KeyPublicValues:       artifact.PublicValues,
		KeyLastProvedPoints:   strconv.Itoa(points),
	}, nil)
}

// Reset deletes every key the catalog can produce, leaving a first-launch state.
func (s *ProgressStore) Reset(ctx context.Context, quests []domain.Quest) error {
	return s.backend.Write(ctx, nil, AllKeys(quests))
}
