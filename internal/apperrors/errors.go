package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrConflict indicates that the operation conflicts with the current resource state.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidOperation indicates an operation incompatible with the current
// state of the aggregate, e.g. adding an installment to a journey whose
// payment option is full.
var ErrInvalidOperation = errors.New("invalid operation for current state")

// ErrPaymentExceeded indicates that an installment would push the installment
// sum past the journey's agreed total amount.
var ErrPaymentExceeded = errors.New("installments would exceed total amount")

// ErrPaymentIncomplete indicates that a journey cannot be completed while the
// total paid is below the agreed total amount.
var ErrPaymentIncomplete = errors.New("payment incomplete")

// AppError carries a status code alongside a message and the underlying
// cause. Repositories use it to wrap storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
