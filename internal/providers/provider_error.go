package providers

import (
	"errors"
	"fmt"

	"campus-hub/agora/internal/constants"
)

// ProviderError represents an upstream-API-specific error
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an upstream 404
func IsNotFound(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeResourceNotFound
}

// IsAuthError reports whether err is a credential configuration or rejection
// problem, i.e. user-actionable rather than transient.
func IsAuthError(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == constants.ErrCodeAuthConfig || pe.Code == constants.ErrCodeAuthenticationFailed
}
