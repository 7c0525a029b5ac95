package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
)

// TodoRepository persists todos. The owner id is part of every WHERE
// clause, so cross-owner reads, updates and deletes all fall into the
// same no-rows path as a plain miss.
type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	t.ID = uuid.NewString()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (id, owner_id, text, completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, t.ID, t.OwnerID, t.Text, t.Completed, t.CompletedAt)

	return row.Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, completed, completed_at, owner_id, created_at, updated_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []entity.Todo{}
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
			&t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, text, completed, completed_at, owner_id, created_at, updated_at
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	return scanTodo(row)
}

func (r *TodoRepository) Update(ctx context.Context, ownerID, id string, upd repository.TodoUpdate) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET text = COALESCE($3, text),
		    completed = $4,
		    completed_at = $5,
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id, created_at, updated_at
	`, id, ownerID, upd.Text, upd.Completed, upd.CompletedAt)
	return scanTodo(row)
}

func (r *TodoRepository) DeleteByID(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, completed, completed_at, owner_id, created_at, updated_at
	`, id, ownerID)
	return scanTodo(row)
}

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	t := &entity.Todo{}
	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
