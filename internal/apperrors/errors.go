package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock is returned when a stock movement would take a product
// below zero and the product does not allow negative stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUnbalancedEntry is returned when the debits and credits of a journal entry differ.
var ErrUnbalancedEntry = errors.New("journal entry is not balanced")

// ErrConcurrencyConflict is returned when a unit of work kept losing races
// against concurrent writers and the retry budget ran out.
var ErrConcurrencyConflict = errors.New("concurrency conflict, retry later")

// ErrInvalidState indicates the target record is not in a state that permits the operation.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrUnsupportedTransaction is returned when a transaction type has no posting rule.
var ErrUnsupportedTransaction = errors.New("unsupported transaction type")

// ErrRetryable marks storage errors caused by lock contention or racing inserts.
// It never leaves the service layer; callers see ErrConcurrencyConflict instead.
var ErrRetryable = errors.New("retryable storage conflict")

// AppError carries an HTTP-ish status code along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
