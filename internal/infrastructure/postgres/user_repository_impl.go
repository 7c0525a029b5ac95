package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// UserRepository persists users with their token list embedded as a
// jsonb array, matching the one-document-per-user model.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = uuid.NewString()
	if u.Tokens == nil {
		u.Tokens = []entity.AuthToken{}
	}
	tokens, err := json.Marshal(u.Tokens)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, tokens)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.PasswordHash, tokens)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, tokens, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// GetByToken resolves a user by an entry currently present in their
// token list. A signed-but-removed token finds nothing, which is what
// makes logout an effective revocation.
func (r *UserRepository) GetByToken(ctx context.Context, purpose, token string) (*entity.User, error) {
	entry, err := json.Marshal([]entity.AuthToken{{Purpose: purpose, Token: token}})
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, tokens, created_at, updated_at
		FROM users
		WHERE tokens @> $1::jsonb
	`, entry)
	return scanUser(row)
}

func (r *UserRepository) AddToken(ctx context.Context, userID string, t entity.AuthToken) error {
	entry, err := json.Marshal([]entity.AuthToken{t})
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET tokens = tokens || $2::jsonb, updated_at = now()
		WHERE id = $1
	`, userID, entry)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RemoveToken(ctx context.Context, userID string, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET tokens = COALESCE(
			(SELECT jsonb_agg(t) FROM jsonb_array_elements(tokens) AS t WHERE t->>'token' <> $2),
			'[]'::jsonb
		), updated_at = now()
		WHERE id = $1
	`, userID, token)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Tokens,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
