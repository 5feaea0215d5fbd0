package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
	"quest-client/internal/domain"
)

// AnswerRepository persists in-progress answers.
type AnswerRepository interface {
	SaveAnswer(ctx context.Context, questID, subIndex int, text string) error
	LoadAnswers(ctx context.Context, questID, multiplicity int) ([]string, error)
	ClearAnswers(ctx context.Context, questID int) error
}

// ProgressRepository persists reconciled statuses, the aggregate score and the proof artifact.
type ProgressRepository interface {
	LoadStatus(ctx context.Context, quest domain.Quest) (domain.QuestStatus, error)
	LoadTotal(ctx context.Context) (int, bool, error)
	LoadProof(ctx context.Context) (domain.ProofArtifact, bool, error)
	CommitRound(ctx context.Context, quests []domain.Quest, round domain.Round) error
	SaveProof(ctx context.Context, artifact domain.ProofArtifact, points int) error
	Reset(ctx context.Context, quests []domain.Quest) error
}

// QuestRepository loads quest definitions (from cache/backing store).
type QuestRepository interface {
	Quests(ctx context.Context) ([]domain.Quest, error)
}

// Verifier is the remote grading and proof service.
type Verifier interface {
	SubmitBatch(ctx context.Context, entries []domain.AnswerEntry) (domain.VerificationResponse, error)
	GenerateProof(ctx context.Context, points int) (domain.ProofResult, error)
}

// SubmitOptions tunes a single submission.
type SubmitOptions struct {
	// OnProgress, when set, receives simulated progress while the request is in flight.
	OnProgress func(percent float64)
}

// SubmitResult summarizes a reconciled submission.
type SubmitResult struct {
	Statuses         []domain.QuestStatus   `json:"statuses"`
	Score            domain.ScoreUpdate     `json:"score"`
	ProofInvalidated bool                   `json:"proofInvalidated"`
	Gaps             []domain.ValidationGap `json:"gaps,omitempty"`
	Tier             domain.RewardTier      `json:"tier"`
}

// ProveResult summarizes a proof request.
type ProveResult struct {
	Proved   bool                  `json:"proved"`
	Cached   bool                  `json:"cached"`
	Points   int                   `json:"points"`
	Artifact *domain.ProofArtifact `json:"artifact,omitempty"`
}

// QuestService contains the quest progress use cases.
type QuestService struct {
	answers  AnswerRepository
	progress ProgressRepository
	quests   QuestRepository
	verifier Verifier
	logger   *slog.Logger

	progressOpts []ProgressOption

	// mu serializes writes to the store; submitting and proving are try-locks.
	mu         sync.Mutex
	submitting *semaphore.Weighted
	proving    *semaphore.Weighted
}

// Option configures a QuestService.
type Option func(*QuestService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *QuestService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgressOptions applies to every simulator created for Submit.
func WithProgressOptions(opts ...ProgressOption) Option {
	return func(s *QuestService) {
		s.progressOpts = append(s.progressOpts, opts...)
	}
}

func NewQuestService(answers AnswerRepository, progress ProgressRepository, quests QuestRepository, verifier Verifier, opts ...Option) *QuestService {
	s := &QuestService{
		answers:    answers,
		progress:   progress,
		quests:     quests,
		verifier:   verifier,
		logger:     slog.Default(),
		submitting: semaphore.NewWeighted(1),
		proving:    semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quests returns the catalog sorted by id.
func (s *QuestService) Quests(ctx context.Context) ([]domain.Quest, error) {
	quests, err := s.quests.Quests(ctx)
	if err != nil {
		return nil, err
	}
	if len(quests) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return quests, nil
}

// Quest looks a single quest up by id.
func (s *QuestService) Quest(ctx context.Context, questID int) (domain.Quest, error) {
	quests, err := s.Quests(ctx)
	if err != nil {
		return domain.Quest{}, err
	}
	for _, q := range quests {
		if q.ID == questID {
			return q, nil
		}
	}
	return domain.Quest{}, fmt.Errorf("%w: %d", domain.ErrQuestNotFound, questID)
}

// SaveAnswer stores the answer for one sub-question (0-based) immediately.
func (s *QuestService) SaveAnswer(ctx context.Context, questID, subIndex int, text string) error {
	q, err := s.Quest(ctx, questID)
	if err != nil {
		return err
	}
	if subIndex < 0 || subIndex >= q.SubQuestions() {
		return fmt.Errorf("%w: quest %d has %d, got index %d", domain.ErrSubQuestionOutOfRange, questID, q.SubQuestions(), subIndex)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.SaveAnswer(ctx, questID, subIndex, text)
}

// Answers returns exactly one answer per sub-question of the quest.
func (s *QuestService) Answers(ctx context.Context, questID int) ([]string, error) {
	q, err := s.Quest(ctx, questID)
	if err != nil {
		return nil, err
	}
	return s.answers.LoadAnswers(ctx, q.ID, q.SubQuestions())
}

// ClearAnswers drops the saved answers of one quest.
func (s *QuestService) ClearAnswers(ctx context.Context, questID int) error {
	if _, err := s.Quest(ctx, questID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.ClearAnswers(ctx, questID)
}

// Submit sends every answer to the verifier and reconciles the verdicts.
// A submit while another is in flight is rejected with ErrSubmissionInProgress
// and sends nothing. On a network error no local state changes.
func (s *QuestService) Submit(ctx context.Context, opts SubmitOptions) (SubmitResult, error) {
	if !s.submitting.TryAcquire(1) {
		return SubmitResult{}, domain.ErrSubmissionInProgress
	}
	defer s.submitting.Release(1)

	quests, err := s.Quests(ctx)
	if err != nil {
		return SubmitResult{}, err
	}

	saved := make(map[int][]string, len(quests))
	for _, q := range quests {
		answers, err := s.answers.LoadAnswers(ctx, q.ID, q.SubQuestions())
		if err != nil {
			return SubmitResult{}, fmt.Errorf("load answers for quest %d: %w", q.ID, err)
		}
		saved[q.ID] = answers
	}
	entries := BuildBatch(quests, saved)

	verifier := s.verifier
	if opts.OnProgress != nil {
		verifier = WithProgress(verifier, NewProgressSimulator(opts.OnProgress, s.progressOpts...))
	}

	resp, err := verifier.SubmitBatch(ctx, entries)
	if err != nil {
		s.logger.Warn("batch submission failed", "entries", len(entries), "error", err)
		return SubmitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prior := make(map[int]domain.QuestStatus, len(quests))
	for _, q := range quests {
		status, err := s.progress.LoadStatus(ctx, q)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("load status for quest %d: %w", q.ID, err)
		}
		prior[q.ID] = status
	}
	previous, hasPrevious, err := s.progress.LoadTotal(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load total: %w", err)
	}

	rec := Reconcile(quests, prior, resp)
	score := ApplyScore(previous, hasPrevious, resp.TotalPoints)
	for _, gap := range rec.Gaps {
		s.logger.Warn("verdicts match no reconciliation rule",
			"quest_id", gap.QuestID,
			"multiplicity", gap.Multiplicity,
			"successes", gap.Successes,
			"failures", gap.Failures,
		)
	}

	if err := s.progress.CommitRound(ctx, quests, domain.Round{Statuses: rec.Statuses, Score: score}); err != nil {
		return SubmitResult{}, fmt.Errorf("commit round: %w", err)
	}

	result := SubmitResult{
		Statuses:         make([]domain.QuestStatus, 0, len(quests)),
		Score:            score,
		ProofInvalidated: score.InvalidateProof,
		Gaps:             rec.Gaps,
		Tier:             TierFor(score.Total),
	}
	for _, q := range quests {
		result.Statuses = append(result.Statuses, rec.Statuses[q.ID])
	}
	s.logger.Info("submission reconciled",
		"total", score.Total,
		"changed", score.Changed,
		"completed", len(resp.CompletedQuests),
		"failed", len(resp.FailedQuests),
	)
	return result, nil
}

// Prove asks the proof service to prove the current aggregate score. An
// artifact still bound to the current score is returned without a request.
func (s *QuestService) Prove(ctx context.Context) (ProveResult, error) {
	if !s.proving.TryAcquire(1) {
		return ProveResult{}, domain.ErrProofInProgress
	}
	defer s.proving.Release(1)

	total, _, err := s.progress.LoadTotal(ctx)
	if err != nil {
		return ProveResult{}, fmt.Errorf("load total: %w", err)
	}
	if artifact, ok, err := s.progress.LoadProof(ctx); err != nil {
		return ProveResult{}, fmt.Errorf("load proof: %w", err)
	} else if ok {
		return ProveResult{Proved: true, Cached: true, Points: total, Artifact: &artifact}, nil
	}

	res, err := s.verifier.GenerateProof(ctx, total)
	if err != nil {
		s.logger.Warn("proof request failed", "points", total, "error", err)
		return ProveResult{}, err
	}
	if !res.Success {
		s.logger.Info("score not provable", "points", total)
		return ProveResult{Points: total}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The score may have moved while the proof was being generated.
	current, _, err := s.progress.LoadTotal(ctx)
	if err != nil {
		return ProveResult{}, fmt.Errorf("load total: %w", err)
	}
	if current != total {
		s.logger.Info("discarding proof for stale score", "proved", total, "current", current)
		return ProveResult{Points: current}, nil
	}
	if err := s.progress.SaveProof(ctx, res.Artifact, total); err != nil {
		return ProveResult{}, fmt.Errorf("save proof: %w", err)
	}
	artifact := res.Artifact
	return ProveResult{Proved: true, Points: total, Artifact: &artifact}, nil
}

// Reset removes every answer, status, the aggregate score and the proof.
func (s *QuestService) Reset(ctx context.Context) error {
	quests, err := s.Quests(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.progress.Reset(ctx, quests); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	s.logger.Info("progress cleared", "quests", len(quests))
	return nil
}

// Submitting reports whether a submission currently holds the lock.
func (s *QuestService) Submitting() bool {
	if s.submitting.TryAcquire(1) {
		s.submitting.Release(1)
		return false
	}
	return true
}

// IsNetworkError reports whether err came from the verification transport.
func IsNetworkError(err error) bool {
	return errors.Is(err, domain.ErrNetwork)
}
