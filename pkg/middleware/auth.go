package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const claimsKey contextKeyType = "claims"

// Claims represents the session claims extracted by the auth middleware.
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Cargo string `json:"cargo"`
}

// TokenValidator is a function that validates a session token and returns
// its claims. The service injects its own validation logic.
type TokenValidator func(token string) (*Claims, error)

// Auth middleware validates bearer session tokens and injects the decoded
// claims into the request context. A missing Authorization header and an
// unverifiable token produce distinct messages, both as 401.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "Token não fornecido")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "Token inválido")
				return
			}

			claims, err := validate(parts[1])
			if err != nil {
				writeAuthError(w, "Token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the session claims from the request context.
// Returns nil if the request did not pass through the Auth middleware.
func ClaimsFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey).(*Claims); ok {
		return c
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
