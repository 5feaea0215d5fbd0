package domain

import "errors"

var (
	// ErrNetwork is returned when the verification service could not be reached or answered with a non-2xx status.
	ErrNetwork = errors.New("verification service unavailable")
	// ErrMalformedHex indicates proof public values that are not valid hex.
	ErrMalformedHex = errors.New("malformed hex in public values")
	// ErrSubmissionInProgress is returned when a batch submission is already in flight.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrProofInProgress is returned when a proof request is already in flight.
	ErrProofInProgress = errors.New("proof generation already in progress")
	// ErrQuestNotFound indicates a quest id that is not part of the catalog.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrSubQuestionOutOfRange indicates a sub-question index outside the quest's multiplicity.
	ErrSubQuestionOutOfRange = errors.New("sub-question index out of range")
	// ErrCatalogEmpty indicates the quest catalog could not supply any quest.
	ErrCatalogEmpty = errors.New("quest catalog is empty")
)
