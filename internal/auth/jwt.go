package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims embedded in a session token.
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Cargo string `json:"cargo"`
	jwt.RegisteredClaims
}

// SessionManager handles session token generation and validation. Tokens are
// self-contained; validation needs only the signing secret and the clock.
type SessionManager struct {
	secret []byte
	expiry time.Duration
}

// NewSessionManager creates a session manager with the given secret and
// token lifetime.
func NewSessionManager(secret string, expiry time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate creates a signed session token embedding id, email, nome and cargo.
func (m *SessionManager) Generate(id int64, email, nome, cargo string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		ID:    id,
		Email: email,
		Nome:  nome,
		Cargo: cargo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "agendapro-auth",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signedToken, nil
}

// Validate parses and validates a session token, returning the claims.
// Expired tokens and tokens with an unverifiable signature both fail.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token claims")
	}

	return claims, nil
}
