package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration reports a caller bug: bad max turns, missing model,
	// or an empty or malformed initial transcript.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrBudgetExhausted is returned when the model still requests tools on the
	// final call made with tools disabled.
	ErrBudgetExhausted = errors.New("turn budget exhausted")
	// ErrCancelled wraps the context error when a run is cancelled.
	ErrCancelled = errors.New("run cancelled")
)

// TransportError is a network or API failure at the model boundary.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model transport: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is a model response that is neither a final message
// nor a well-formed tool request.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return "malformed model response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
