package repo

import (
	"errors"
	"fmt"
)

// Error represents a failure in the data layer.
//
// Data layer errors include:
//   - Storage IO: the underlying read or write failed
//   - Not found: update/delete target missing from its collection
//   - Validation: required field missing or uniqueness violated
//
// Error includes structured fields for diagnostics and recovery.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Key identifies the affected collection key.
	Key string

	// ID identifies the affected entity, if any.
	ID string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes data layer errors.
type ErrorCode string

const (
	// ErrCodeStorageIO indicates the underlying storage call failed.
	// Callers must surface this: the change was not saved.
	ErrCodeStorageIO ErrorCode = "STORAGE_IO"

	// ErrCodeNotFound indicates an update/delete target is missing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeValidation indicates a required field is missing or invalid.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeDuplicateEmail indicates a registration email is already taken.
	ErrCodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"
)

// Warning codes. Warnings report degraded conditions that never block
// the operation that detected them.
const (
	// WarnCodeBadCollectionData indicates a stored document did not
	// deserialize; the collection degraded to empty.
	WarnCodeBadCollectionData ErrorCode = "BAD_COLLECTION_DATA"

	// WarnCodeDanglingReference indicates a product references a
	// category id that no longer exists.
	WarnCodeDanglingReference ErrorCode = "DANGLING_REFERENCE"
)

// Warning is a non-fatal finding surfaced alongside a successful result.
type Warning struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Key     string    `json:"key,omitempty"`
	ID      string    `json:"id,omitempty"`
}

func (w Warning) String() string {
	if w.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", w.Code, w.Message, w.ID)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key != "" && e.ID != "" {
		return fmt.Sprintf("%s: %s (key=%s, id=%s)", e.Code, e.Message, e.Key, e.ID)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a missing-entity error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation returns true if the error is a validation error,
// including duplicate-email violations.
func IsValidation(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeValidation || re.Code == ErrCodeDuplicateEmail
	}
	return false
}

// IsStorage returns true if the error is a storage IO error.
func IsStorage(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == ErrCodeStorageIO
	}
	return false
}

// NewNotFoundError creates an Error for a missing entity.
func NewNotFoundError(key, id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "no entity with this id in collection",
		Key:     key,
		ID:      id,
	}
}

// NewStorageError wraps an underlying storage failure.
func NewStorageError(key string, err error) *Error {
	return &Error{
		Code:    ErrCodeStorageIO,
		Message: err.Error(),
		Key:     key,
		Err:     err,
	}
}

// NewValidationError creates an Error for an invalid entity.
func NewValidationError(message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
	}
}
