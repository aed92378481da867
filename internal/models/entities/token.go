package entities

import (
	"time"

	"campus-hub/agora/internal/constants"
)

// CachedToken is an OAuth2 bearer token plus its absolute expiry. It lives in
// process memory and in the shared cache store so any instance can reuse a
// still-valid token instead of re-authenticating.
type CachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the token can still be used at the given instant,
// leaving the configured safety margin before the real expiry.
func (t CachedToken) Valid(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-constants.TokenSafetyMargin))
}
