package repository

import (
	"context"

	"github.com/oksasatya/todo-api/internal/domain/entity"
)

// TodoUpdate is the set of fields a PATCH may change. CompletedAt is
// derived by the service, never taken from the client.
type TodoUpdate struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// TodoRepository defines the interface for todo-related database operations.
// Every lookup takes the owner id so the ownership filter is part of the
// query itself; a todo owned by someone else behaves exactly like a miss.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error)
	GetByID(ctx context.Context, ownerID, id string) (*entity.Todo, error)
	Update(ctx context.Context, ownerID, id string, upd TodoUpdate) (*entity.Todo, error)
	DeleteByID(ctx context.Context, ownerID, id string) (*entity.Todo, error)
}
