package constants

// Upstream (42 Intra API) Error Codes
// These constants define specific error scenarios for the upstream profile API

// Credential-related errors
const (
	ErrCodeAuthConfig           = "AUTH_CONFIG_MISSING"
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeNetworkError         = "NETWORK_ERROR"
)

// Resource errors
const (
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
	ErrCodeUpstreamError    = "UPSTREAM_ERROR"
	ErrCodeInvalidPayload   = "INVALID_PAYLOAD"
)

// Error Messages
// Human-readable messages corresponding to error codes

var IntraErrorMessages = map[string]string{
	ErrCodeAuthConfig:           "Intra API client credentials are not configured",
	ErrCodeAuthenticationFailed: "Authentication with the Intra API failed",
	ErrCodeRateLimited:          "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError:         "Unable to reach the Intra API",
	ErrCodeResourceNotFound:     "The requested resource was not found upstream",
	ErrCodeUpstreamError:        "The Intra API returned an unexpected response",
	ErrCodeInvalidPayload:       "The upstream payload could not be decoded",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := IntraErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
