package usecase

import (
	"errors"
	"fmt"

	"github.com/palpiteria/bolao/internal/domain/championship"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrOverwriteRefused = errors.New("overwrite not confirmed")
	ErrRoundUnconfirmed = errors.New("inferred round not confirmed")
)

// MandatoryPendingError reports a final-mode round close attempted while
// mandatory games still lack a result. Pending lists them so the caller
// can show which scores are missing.
type MandatoryPendingError struct {
	Round   int
	Pending []championship.Match
}

func (e *MandatoryPendingError) Error() string {
	return fmt.Sprintf("round %d has %d mandatory games without result", e.Round, len(e.Pending))
}

func (e *MandatoryPendingError) Unwrap() error { return ErrInvalidInput }

// InferredRoundError reports a prediction sheet whose round came from
// team mentions and was not explicitly confirmed.
type InferredRoundError struct {
	Participant string
	Round       int
}

func (e *InferredRoundError) Error() string {
	return fmt.Sprintf("round %d for %s was inferred from the mentioned teams", e.Round, e.Participant)
}

func (e *InferredRoundError) Unwrap() error { return ErrRoundUnconfirmed }

// OverwriteError reports stored predictions an unforced import would
// replace.
type OverwriteError struct {
	Participant string
	Round       int
	Existing    int
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("%s already has %d predictions in round %d", e.Participant, e.Existing, e.Round)
}

func (e *OverwriteError) Unwrap() error { return ErrOverwriteRefused }
