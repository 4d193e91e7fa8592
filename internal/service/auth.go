package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiagomuniz-ia/agendapro-final/internal/auth"
	"github.com/tiagomuniz-ia/agendapro-final/internal/domain"
	"github.com/tiagomuniz-ia/agendapro-final/internal/event"
	"github.com/tiagomuniz-ia/agendapro-final/internal/repository"
	apperrors "github.com/tiagomuniz-ia/agendapro-final/pkg/errors"
)

// Canonical client-facing messages. The credential failure message is
// identical for an unknown email, a deactivated account, and a wrong
// password, so responses never reveal whether an account exists.
const (
	MsgMissingCredentials = "Email e senha são obrigatórios"
	MsgInvalidCredentials = "Email ou senha incorretos"
	MsgServerError        = "Erro no servidor"
)

// sideEffectTimeout bounds the detached post-login tasks (last-access touch,
// event publication), which run outside the request's lifetime.
const sideEffectTimeout = 5 * time.Second

// AuthService implements the login and session verification logic.
type AuthService struct {
	users    repository.UserRepository
	sessions *auth.SessionManager
	producer *event.Producer
	logger   *slog.Logger

	wg sync.WaitGroup
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users repository.UserRepository,
	sessions *auth.SessionManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Email string
	Senha string
}

// LoginResult holds a minted session token and the user's profile subset.
type LoginResult struct {
	Token string
	User  domain.Profile
}

// Login authenticates a user with email and password and mints a session
// token. The last-access update and the login event are fire-and-forget:
// they never delay or fail the response.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Senha == "" {
		return nil, apperrors.InvalidInput(MsgMissingCredentials)
	}

	user, err := s.users.GetActiveByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(MsgInvalidCredentials)
		}
		s.logger.ErrorContext(ctx, "user lookup failed",
			slog.String("email", input.Email),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(input.Senha)); err != nil {
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}

	token, err := s.sessions.Generate(user.ID, user.Email, user.Nome, user.Cargo)
	if err != nil {
		s.logger.ErrorContext(ctx, "session token generation failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(MsgServerError, err)
	}

	s.runDetached(func(taskCtx context.Context) {
		if err := s.users.TouchLastAccess(taskCtx, user.ID); err != nil {
			s.logger.Error("failed to update ultimo_acesso",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		}
	})

	loggedUser := *user
	s.runDetached(func(taskCtx context.Context) {
		if err := s.producer.PublishUserLoggedIn(taskCtx, &loggedUser); err != nil {
			s.logger.Error("failed to publish user.logged_in event",
				slog.Int64("user_id", loggedUser.ID),
				slog.String("error", err.Error()),
			)
		}
	})

	s.logger.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return &LoginResult{
		Token: token,
		User:  user.Profile(),
	}, nil
}

// Verify validates a session token and returns its claims. No store lookup
// happens: claims are trusted as of issuance time until the token expires.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Token inválido")
	}
	return claims, nil
}

// runDetached runs fn on its own goroutine with a context decoupled from the
// request. The task is tracked so Wait can drain it during shutdown.
func (s *AuthService) runDetached(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until all detached side-effect tasks have finished.
func (s *AuthService) Wait() {
	s.wg.Wait()
}
