package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrFlightNotFound is returned when an identifier search yields no
	// live entries. A legitimate empty result, not a provider fault.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrNoTrackedInstances is returned when a registration resolved from
	// a live search hit enumerates zero tracked instances.
	ErrNoTrackedInstances = errors.New("no tracked instances for registration")
)

// ProviderError wraps transport or parse failures talking to the upstream
// flight-data source, keeping them distinguishable from domain outcomes
// like ErrFlightNotFound.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a provider fault for the given operation.
func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

// IsProviderError reports whether err is (or wraps) a provider fault.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
