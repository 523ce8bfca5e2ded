package domain

import "errors"

var (
	ErrNotFound = errors.New("offer not found")

	// ErrInvalidOperation matches every rejected business operation.
	ErrInvalidOperation = errors.New("invalid operation")

	ErrSelfTrade error = &OperationError{Msg: "cannot bid on your own offer"}
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

type OperationError struct {
	Msg string
}

func (e *OperationError) Error() string { return e.Msg }

func (e *OperationError) Is(target error) bool { return target == ErrInvalidOperation }
