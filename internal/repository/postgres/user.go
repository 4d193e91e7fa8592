package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagomuniz-ia/agendapro-final/internal/domain"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/database"
	apperrors "github.com/tiagomuniz-ia/agendapro-final/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	pool database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool database.DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetActiveByEmail retrieves the active user with the given email address.
// Inactive accounts are filtered in the query, so an unknown email and a
// deactivated account are indistinguishable to the caller.
func (r *UserRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, nome, email, senha_hash, telefone, cargo, foto_url, tema,
		       idioma, receber_notificacoes, data_criacao, ultimo_acesso, ativo
		FROM usuarios
		WHERE email = $1 AND ativo = true`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Nome,
		&u.Email,
		&u.SenhaHash,
		&u.Telefone,
		&u.Cargo,
		&u.FotoURL,
		&u.Tema,
		&u.Idioma,
		&u.ReceberNotificacoes,
		&u.DataCriacao,
		&u.UltimoAcesso,
		&u.Ativo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

// TouchLastAccess sets ultimo_acesso to the current time for the given user.
func (r *UserRepository) TouchLastAccess(ctx context.Context, id int64) error {
	query := `UPDATE usuarios SET ultimo_acesso = NOW() WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update ultimo_acesso: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("usuario", fmt.Sprintf("%d", id))
	}

	return nil
}
