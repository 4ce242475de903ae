package statement

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInvoiceSet is returned when a statement is requested for no invoices.
	ErrEmptyInvoiceSet = errors.New("statement requires at least one invoice")

	// ErrInvalidRequest is returned when a statement request fails validation.
	ErrInvalidRequest = errors.New("invalid statement request")
)

// RequestError describes why a statement request was rejected.
type RequestError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("statement: %v", e.Err)
	}
	return fmt.Sprintf("statement: %s: %s: %v", e.Field, e.Message, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RequestError) Unwrap() error {
	return e.Err
}
