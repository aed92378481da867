package constants

import "errors"

// Store-side error codes. The cache layer never interprets these, it only
// propagates them to the caller.
const (
	ErrCodeConflict   = "CONFLICT"
	ErrCodeValidation = "VALIDATION_FAILED"
	ErrCodeForbidden  = "FORBIDDEN"
)

// DomainError represents a typed constraint or validation failure raised by
// the backing store or a service-level pre-check.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewConflict(message string) *DomainError {
	return &DomainError{Code: ErrCodeConflict, Message: message}
}

func NewValidation(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

func NewForbidden(message string) *DomainError {
	return &DomainError{Code: ErrCodeForbidden, Message: message}
}

// IsConflict reports whether err is a DomainError with the CONFLICT code.
func IsConflict(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeConflict
}

// IsValidation reports whether err is a DomainError with the VALIDATION_FAILED code.
func IsValidation(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeValidation
}

// IsForbidden reports whether err is a DomainError with the FORBIDDEN code.
func IsForbidden(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeForbidden
}
