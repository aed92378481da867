package middleware

import (
	"net/http"
	"strings"

	"campus-hub/agora/internal/auth"
)

// SessionAuth requires a valid bearer session token and stores its claims on
// the request context.
func SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.SetClaims(r.Context(), claims)))
	})
}
