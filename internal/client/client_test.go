package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleUserJSON = `{"id":1,"nome":"Ana","email":"user@example.com","cargo":"admin","foto_url":"","tema":"light"}`

// newLoginServer returns a server that accepts user@example.com/secret123 and
// counts the requests it receives.
func newLoginServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		var body struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if body.Email != "user@example.com" || body.Senha != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Email ou senha incorretos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"issued-token","user":` + sampleUserJSON + `}`))
	})

	mux.HandleFunc("GET /api/verify-token", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Token inválido"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"user":` + sampleUserJSON + `}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin_Success_PersistsSession(t *testing.T) {
	var requests atomic.Int64
	srv := newLoginServer(t, &requests)
	storage := NewMemoryStorage()
	c := New(srv.URL, storage)

	result, err := c.Login(context.Background(), LoginForm{Email: "user@example.com", Senha: "secret123"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, "Ana", result.User.Nome)

	token, ok := storage.Get(StorageKeyToken)
	assert.True(t, ok)
	assert.Equal(t, "issued-token", token)

	rawUser, ok := storage.Get(StorageKeyUser)
	assert.True(t, ok)
	assert.JSONEq(t, sampleUserJSON, rawUser)

	assert.True(t, c.LoggedIn())
}

func TestLogin_Failure_PersistsNothing(t *testing.T) {
	var requests atomic.Int64
	srv := newLoginServer(t, &requests)
	storage := NewMemoryStorage()
	c := New(srv.URL, storage)

	result, err := c.Login(context.Background(), LoginForm{Email: "user@example.com", Senha: "wrong"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Email ou senha incorretos", result.Message)

	_, hasToken := storage.Get(StorageKeyToken)
	_, hasUser := storage.Get(StorageKeyUser)
	assert.False(t, hasToken)
	assert.False(t, hasUser)
	assert.False(t, c.LoggedIn())
}

func TestLogin_InvalidForm_NoRequestIssued(t *testing.T) {
	tests := []struct {
		name       string
		form       LoginForm
		wantField  string
		wantErrMsg string
	}{
		{"empty email", LoginForm{Senha: "secret123"}, "email", MsgEmailRequired},
		{"malformed email", LoginForm{Email: "not-an-email", Senha: "secret123"}, "email", MsgEmailInvalid},
		{"empty password", LoginForm{Email: "user@example.com"}, "senha", MsgSenhaRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int64
			srv := newLoginServer(t, &requests)
			c := New(srv.URL, NewMemoryStorage())

			result, err := c.Login(context.Background(), tt.form)

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantErrMsg, result.FieldErrors[tt.wantField])
			assert.Equal(t, int64(0), requests.Load(), "invalid forms must not reach the network")
		})
	}
}

func TestLogin_ServerUnreachable_ConnectionMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections from here on
	storage := NewMemoryStorage()
	c := New(srv.URL, storage)

	result, err := c.Login(context.Background(), LoginForm{Email: "user@example.com", Senha: "secret123"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, MsgConnectionError, result.Message)
	assert.False(t, c.LoggedIn())
}

func TestVerifyToken_AttachesStoredBearer(t *testing.T) {
	var requests atomic.Int64
	srv := newLoginServer(t, &requests)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(StorageKeyToken, "issued-token"))
	c := New(srv.URL, storage)

	result, err := c.VerifyToken(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, "user@example.com", result.User.Email)
}

func TestCheckAccess(t *testing.T) {
	t.Run("no token denies without network call", func(t *testing.T) {
		var requests atomic.Int64
		srv := newLoginServer(t, &requests)
		c := New(srv.URL, NewMemoryStorage())

		ok, err := c.CheckAccess(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(0), requests.Load())
	})

	t.Run("valid token grants access", func(t *testing.T) {
		var requests atomic.Int64
		srv := newLoginServer(t, &requests)
		storage := NewMemoryStorage()
		require.NoError(t, storage.Set(StorageKeyToken, "issued-token"))
		c := New(srv.URL, storage)

		ok, err := c.CheckAccess(context.Background())

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejected token denies access", func(t *testing.T) {
		var requests atomic.Int64
		srv := newLoginServer(t, &requests)
		storage := NewMemoryStorage()
		require.NoError(t, storage.Set(StorageKeyToken, "stale-token"))
		c := New(srv.URL, storage)

		ok, err := c.CheckAccess(context.Background())

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLogout_ClearsSession(t *testing.T) {
	var requests atomic.Int64
	srv := newLoginServer(t, &requests)
	storage := NewMemoryStorage()
	c := New(srv.URL, storage)

	_, err := c.Login(context.Background(), LoginForm{Email: "user@example.com", Senha: "secret123"})
	require.NoError(t, err)
	require.True(t, c.LoggedIn())
	requestsBefore := requests.Load()

	require.NoError(t, c.Logout())

	_, hasToken := storage.Get(StorageKeyToken)
	_, hasUser := storage.Get(StorageKeyUser)
	assert.False(t, hasToken)
	assert.False(t, hasUser)
	assert.False(t, c.LoggedIn())
	assert.Equal(t, requestsBefore, requests.Load(), "logout is local only")

	// The guard must now deny without touching the network.
	ok, err := c.CheckAccess(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, requestsBefore, requests.Load())
}

func TestStoredProfile(t *testing.T) {
	storage := NewMemoryStorage()
	c := New("http://localhost:0", storage)

	_, ok := c.StoredProfile()
	assert.False(t, ok)

	require.NoError(t, storage.Set(StorageKeyUser, sampleUserJSON))

	profile, ok := c.StoredProfile()
	require.True(t, ok)
	assert.Equal(t, "Ana", profile.Nome)
	assert.Equal(t, "admin", profile.Cargo)
}
