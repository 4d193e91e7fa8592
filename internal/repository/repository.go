package repository

import (
	"context"

	"github.com/tiagomuniz-ia/agendapro-final/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// GetActiveByEmail retrieves the active user with the given email.
	// Returns apperrors.ErrNotFound both for an unknown email and for a
	// deactivated account, so callers cannot distinguish the two.
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)

	// TouchLastAccess sets the user's ultimo_acesso to the current time.
	TouchLastAccess(ctx context.Context, id int64) error
}
