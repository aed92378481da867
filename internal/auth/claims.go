package auth

import (
	"context"
	"os"
	"time"

	"campus-hub/agora/internal/models/entities"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const claimsKey contextKey = "session_claims"

// SessionClaims identify the calling account on owner-gated routes
type SessionClaims struct {
	AccountID int64  `json:"account_id"`
	Login     string `json:"login"`
	jwt.RegisteredClaims
}

func secret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "dev-secret" // local development only
	}
	return []byte(s)
}

// IssueToken signs a session token for an account
func IssueToken(account *entities.Account, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		AccountID: account.ID,
		Login:     account.Login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Login,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ParseToken validates a session token and returns its claims
func ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// SetClaims stores claims on the request context
func SetClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the claims on the request context, or nil
func GetClaims(ctx context.Context) *SessionClaims {
	claims, _ := ctx.Value(claimsKey).(*SessionClaims)
	return claims
}
