package feed

import (
	"errors"
	"fmt"
)

// ErrUnknownWeightKey is returned when a caller-supplied weight override
// names a factor the engine does not recognize. Rejecting instead of
// ignoring catches typos in experiment configs before they silently run
// with default weights.
var ErrUnknownWeightKey = errors.New("unknown scoring weight key")

// ErrInvalidWeightValue is returned when a weight override carries a
// negative value.
var ErrInvalidWeightValue = errors.New("scoring weight must be non-negative")

// SourceUnavailableError wraps a content source failure. It is retryable:
// the HTTP layer should degrade to an empty feed rather than surface it.
type SourceUnavailableError struct {
	Op  string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("content source unavailable during %s: %v", e.Op, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// IsSourceUnavailable reports whether err is (or wraps) a content source
// failure.
func IsSourceUnavailable(err error) bool {
	var se *SourceUnavailableError
	return errors.As(err, &se)
}
