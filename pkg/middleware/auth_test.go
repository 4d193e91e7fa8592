package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestHandler(t *testing.T, gotClaims **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	validate := func(token string) (*Claims, error) {
		if token != "good-token" {
			return nil, errors.New("token is invalid")
		}
		return &Claims{ID: 1, Email: "user@example.com", Nome: "Ana", Cargo: "admin"}, nil
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"no header", "", http.StatusUnauthorized, "Token não fornecido"},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized, "Token inválido"},
		{"bearer without token", "Bearer", http.StatusUnauthorized, "Token inválido"},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, "Token inválido"},
		{"valid token", "Bearer good-token", http.StatusOK, ""},
		{"lowercase scheme accepted", "bearer good-token", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *Claims
			handler := Auth(validate)(authTestHandler(t, &gotClaims))

			req := httptest.NewRequest(http.MethodGet, "/api/verify-token", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, gotClaims)
				assert.Equal(t, int64(1), gotClaims.ID)
				assert.Equal(t, "admin", gotClaims.Cargo)
			} else {
				assert.Nil(t, gotClaims)
				assert.Contains(t, rec.Body.String(), tt.wantMessage)
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestClaimsFromContext_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ClaimsFromContext(req.Context()))
}
