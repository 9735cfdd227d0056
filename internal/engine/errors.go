package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintConflict means the accumulated feedback is contradictory,
	// which only happens for corrupted or out-of-order feedback.
	ErrConstraintConflict = errors.New("constraint conflict")
	// ErrNoGuessFound means every strategy came up empty, including the
	// opening-word fallback. That is a configuration error.
	ErrNoGuessFound    = errors.New("no guess found")
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidFeedback = errors.New("invalid feedback")
)

// ConflictError describes the letter whose facts contradict each other.
type ConflictError struct {
	Letter byte
	Min    int
	Max    int
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Letter == 0 {
		return fmt.Sprintf("%v: %s", ErrConstraintConflict, e.Reason)
	}
	return fmt.Sprintf("%v: %c: %s (min %d, max %d)", ErrConstraintConflict, e.Letter, e.Reason, e.Min, e.Max)
}

func (e *ConflictError) Unwrap() error { return ErrConstraintConflict }
