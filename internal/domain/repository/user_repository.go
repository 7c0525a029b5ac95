package repository

import (
	"context"

	"github.com/oksasatya/todo-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// GetByToken matches against the stored token list, so a validly signed
// token that was removed on logout no longer resolves to a user.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByToken(ctx context.Context, purpose, token string) (*entity.User, error)
	AddToken(ctx context.Context, userID string, t entity.AuthToken) error
	RemoveToken(ctx context.Context, userID string, token string) error
}
