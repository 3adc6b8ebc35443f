package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInput is returned when generation is requested with zero files.
	ErrNoInput = errors.New("no input files supplied")
	// ErrGenerationInProgress rejects a duplicate concurrent generation request.
	ErrGenerationInProgress = errors.New("a generation request is already in flight")
	// ErrEmptySet is returned when the generator produced zero usable questions.
	ErrEmptySet = errors.New("generator returned an empty question set")
	// ErrNoActiveQuiz indicates a review operation ran with no loaded question set.
	// This is a wiring defect in the caller, not a user-facing condition.
	ErrNoActiveQuiz = errors.New("no active quiz loaded")
	// ErrSessionNotFound is returned when a session ID is unknown to the store.
	ErrSessionNotFound = errors.New("quiz session not found")
)

// GeneratorError wraps a transport or service failure from the external
// generator. The reason string is surfaced to the user verbatim.
type GeneratorError struct {
	Reason string
	Err    error
}

func (e *GeneratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generator failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generator failed: %s", e.Reason)
}

func (e *GeneratorError) Unwrap() error { return e.Err }
