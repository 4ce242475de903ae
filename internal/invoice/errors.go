package invoice

import (
	"errors"
	"fmt"
)

// Errors returned by line management. Numeric input never produces an error;
// malformed values are coerced to zero instead.
var (
	// ErrLastLineItem is returned when removing the only remaining line of an invoice.
	ErrLastLineItem = errors.New("an invoice must keep at least one line item")

	// ErrLineIndexOutOfRange is returned when a line index does not exist.
	ErrLineIndexOutOfRange = errors.New("line item index out of range")

	// ErrExtraIndexOutOfRange is returned when an extra deliverable index does not exist.
	ErrExtraIndexOutOfRange = errors.New("extra deliverable index out of range")

	// ErrNilInvoice is returned when an operation receives no invoice.
	ErrNilInvoice = errors.New("invoice is nil")
)

// ProcessingError wraps errors with the operation that failed.
type ProcessingError struct {
	// Op is the operation that failed (e.g., "RemoveLine").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is implements error matching.
func (e *ProcessingError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewProcessingError creates a new ProcessingError.
func NewProcessingError(op string, err error, details string) *ProcessingError {
	return &ProcessingError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
