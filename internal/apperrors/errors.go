package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates an amount that is missing, non-numeric or out of range for the operation.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidCategoryForType indicates a category outside the set permitted for the transaction type.
var ErrInvalidCategoryForType = errors.New("category not permitted for transaction type")

// ErrStoreUnavailable indicates the durable store could not be reached.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrStoreWriteFailed indicates the durable store rejected or could not complete a write.
var ErrStoreWriteFailed = errors.New("store write failed")

// ErrConcurrentUpdate indicates the cash account changed underneath a read-modify-write.
// The whole operation was rolled back and must be re-issued by the user.
var ErrConcurrentUpdate = errors.New("cash account was modified concurrently")

// AppError carries an HTTP status code alongside a message and the underlying error.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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

// IsStoreError reports whether the durable store failed to serve a request. A lost
// compare-and-swap is not a store failure: the store answered and the write can be reissued.
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrStoreWriteFailed)
}
