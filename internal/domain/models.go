package domain

import "fmt"

// Quest is a static tutorial step with one or more sub-questions.
type Quest struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Prompts      []string `json:"prompts"`
	Multiplicity int      `json:"multiplicity"` // defaults to 1 if zero
}

// SubQuestions returns the number of answer slots the quest has.
func (q Quest) SubQuestions() int {
	if q.Multiplicity < 1 {
		return 1
	}
	return q.Multiplicity
}

// MultiPart reports whether the quest is graded per sub-question.
func (q Quest) MultiPart() bool {
	return q.SubQuestions() > 1
}

// State is the reconciled outcome of a quest.
type State int

const (
	StateUnset State = iota
	StateCompleted
	StateFailed
	StatePartial
)

func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StatePartial:
		return "partial"
	default:
		return "unset"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Verdict is the per-sub-question correctness flag of a multi-part quest.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// QuestStatus is the durable reconciliation record of one quest.
type QuestStatus struct {
	QuestID     int       `json:"questId"`
	State       State     `json:"state"`
	Points      int       `json:"points"`
	Message     string    `json:"message,omitempty"`
	SubVerdicts []Verdict `json:"subVerdicts,omitempty"` // only for multi-part quests
}

// AnswerEntry is one slot of a batch verification request.
type AnswerEntry struct {
	QuestID       int    `json:"quest_id"`
	SubQuestionID int    `json:"sub_question_id,omitempty"` // 1-based, multi-part quests only
	Answer        string `json:"answer"`
}

// QuestVerdict is one per-quest or per-sub-question entry of a verification response.
type QuestVerdict struct {
	QuestID       int    `json:"quest_id"`
	SubQuestionID int    `json:"sub_question_id,omitempty"`
	Points        int    `json:"points,omitempty"`
	Message       string `json:"message,omitempty"`
}

// VerificationResponse is the verifier's answer to a batch submission.
type VerificationResponse struct {
	CompletedQuests []QuestVerdict `json:"completed_quests"`
	FailedQuests    []QuestVerdict `json:"failed_quests"`
	TotalPoints     *int           `json:"total_points,omitempty"`
}

// ProofArtifact is a proof bundle bound to the aggregate score it was generated for.
type ProofArtifact struct {
	VerificationResult string `json:"verification_result"`
	VerificationKey    string `json:"vk"`
	PublicValues       string `json:"public_values"`
}

// ProofResult is the outcome of a proof generation request.
// Success=false is a negative result reported by a reachable service.
type ProofResult struct {
	Success  bool
	Artifact ProofArtifact
}

// ScoreUpdate is the result of merging a reported total into the stored one.
type ScoreUpdate struct {
	Previous        int  `json:"previous"`
	Total           int  `json:"total"`
	Changed         bool `json:"changed"`
	InvalidateProof bool `json:"invalidateProof"`
}

// Round is everything a single reconciled submission writes back.
type Round struct {
	Statuses map[int]QuestStatus
	Score    ScoreUpdate
}

// ValidationGap describes a quest whose verdicts matched no reconciliation rule.
type ValidationGap struct {
	QuestID      int `json:"questId"`
	Multiplicity int `json:"multiplicity"`
	Successes    int `json:"successes"`
	Failures     int `json:"failures"`
}

func (g ValidationGap) String() string {
	return fmt.Sprintf("quest %d: %d successes, %d failures of %d sub-questions", g.QuestID, g.Successes, g.Failures, g.Multiplicity)
}

// RewardTier is the cosmetic band of an aggregate score.
type RewardTier struct {
	Threshold       int    `json:"threshold"`
	BackgroundIndex int    `json:"backgroundIndex"`
	Title           string `json:"title"`
	Message         string `json:"message"`
}
