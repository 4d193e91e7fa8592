// Package client owns the client-side authentication lifecycle: form
// validation, login, durable session persistence, bearer attachment on
// outgoing requests, the protected-view route guard, and logout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MsgConnectionError is the single generic message shown for any transport
// failure. Only server-supplied failures surface their own message.
const MsgConnectionError = "Erro ao conectar ao servidor. Verifique sua conexão."

// Profile is the client-side copy of the user profile returned by login.
type Profile struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Cargo   string `json:"cargo"`
	FotoURL string `json:"foto_url"`
	Tema    string `json:"tema"`
}

// LoginResult is the outcome of a login attempt. Success false carries the
// message to display; FieldErrors set means validation blocked submission
// before any network call.
type LoginResult struct {
	Success     bool
	Message     string
	User        *Profile
	FieldErrors FieldErrors
}

// VerifyResult is the outcome of a token verification.
type VerifyResult struct {
	Success bool
	User    *Profile
}

// Client talks to the AgendaPro auth API and owns the persisted session.
type Client struct {
	baseURL string
	http    *http.Client
	storage Storage
}

// bearerTransport attaches the stored token as a bearer credential to every
// outgoing request. No token means the request goes out unauthenticated.
type bearerTransport struct {
	base    http.RoundTripper
	storage Storage
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.storage.Get(StorageKeyToken); ok && token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// New creates a client for the API at baseURL, persisting session state in
// the given storage.
func New(baseURL string, storage Storage) *Client {
	return &Client{
		baseURL: baseURL,
		storage: storage,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &bearerTransport{
				base:    http.DefaultTransport,
				storage: storage,
			},
		},
	}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// Login validates the form, calls the login endpoint and, on success,
// persists token and profile. Nothing is persisted on failure; transport
// failures collapse to the generic connection message.
func (c *Client) Login(ctx context.Context, form LoginForm) (*LoginResult, error) {
	if errs := form.Validate(); errs != nil {
		return &LoginResult{Success: false, FieldErrors: errs}, nil
	}

	body, err := json.Marshal(loginRequest{Email: form.Email, Senha: form.Senha})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &LoginResult{Success: false, Message: MsgConnectionError}, nil
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return &LoginResult{Success: false, Message: MsgConnectionError}, nil
	}

	if !apiResp.Success {
		message := apiResp.Message
		if message == "" {
			message = MsgConnectionError
		}
		return &LoginResult{Success: false, Message: message}, nil
	}

	var profile Profile
	if err := json.Unmarshal(apiResp.User, &profile); err != nil {
		return &LoginResult{Success: false, Message: MsgConnectionError}, nil
	}

	if err := c.storage.Set(StorageKeyToken, apiResp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if err := c.storage.Set(StorageKeyUser, string(apiResp.User)); err != nil {
		return nil, fmt.Errorf("persist user profile: %w", err)
	}

	return &LoginResult{Success: true, User: &profile}, nil
}

// VerifyToken checks the stored token against the server. A failed
// verification (or any transport failure) reports an unauthenticated session.
func (c *Client) VerifyToken(ctx context.Context) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/verify-token", nil)
	if err != nil {
		return nil, fmt.Errorf("create verify request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &VerifyResult{Success: false}, nil
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return &VerifyResult{Success: false}, nil
	}

	if !apiResp.Success {
		return &VerifyResult{Success: false}, nil
	}

	var profile Profile
	if err := json.Unmarshal(apiResp.User, &profile); err != nil {
		return &VerifyResult{Success: false}, nil
	}

	return &VerifyResult{Success: true, User: &profile}, nil
}

// CheckAccess is the protected-view route guard: it reports whether the
// stored session grants access. An absent token short-circuits to false
// without a network call; a failed verification also denies access, and the
// caller is expected to redirect to the login view.
func (c *Client) CheckAccess(ctx context.Context) (bool, error) {
	token, ok := c.storage.Get(StorageKeyToken)
	if !ok || token == "" {
		return false, nil
	}

	result, err := c.VerifyToken(ctx)
	if err != nil {
		return false, err
	}
	return result.Success, nil
}

// StoredProfile returns the locally persisted user profile, if any.
func (c *Client) StoredProfile() (*Profile, bool) {
	raw, ok := c.storage.Get(StorageKeyUser)
	if !ok || raw == "" {
		return nil, false
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// LoggedIn reports whether a session token is currently persisted.
func (c *Client) LoggedIn() bool {
	token, ok := c.storage.Get(StorageKeyToken)
	return ok && token != ""
}

// Logout clears both persisted entries. The server is not called: tokens
// carry no server-side state to revoke.
func (c *Client) Logout() error {
	if err := c.storage.Delete(StorageKeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := c.storage.Delete(StorageKeyUser); err != nil {
		return fmt.Errorf("clear user profile: %w", err)
	}
	return nil
}
