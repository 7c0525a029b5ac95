package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	"github.com/oksasatya/todo-api/pkg/apperror"
)

// TodoService enforces the todo business rules. Every operation is
// scoped to the calling owner; a todo belonging to someone else is
// reported the same way as one that does not exist.
type TodoService struct {
	Repo   repository.TodoRepository
	Logger *logrus.Logger
}

func NewTodoService(repo repository.TodoRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: repo, Logger: logger}
}

// TodoPatch carries the only fields a PATCH may touch. CompletedAt is
// always derived server-side.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string) (*entity.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.NewValidationError("text must not be empty", nil)
	}
	t := &entity.Todo{Text: text, OwnerID: ownerID}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, apperror.NewDatabaseError("failed to create todo", err)
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	todos, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list todos", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	if !validTodoID(id) {
		return nil, apperror.NewNotFoundError("todo not found", nil)
	}
	t, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return t, nil
}

// Update applies a patch. completed=true stamps completedAt with the
// current time in epoch milliseconds; a patch that omits completed or
// sets it to anything but true clears completion entirely.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch TodoPatch) (*entity.Todo, error) {
	if !validTodoID(id) {
		return nil, apperror.NewNotFoundError("todo not found", nil)
	}

	upd := repository.TodoUpdate{}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, apperror.NewValidationError("text must not be empty", nil)
		}
		upd.Text = &text
	}
	if patch.Completed != nil && *patch.Completed {
		now := time.Now().UnixMilli()
		upd.Completed = true
		upd.CompletedAt = &now
	}

	t, err := s.Repo.Update(ctx, ownerID, id, upd)
	if err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return t, nil
}

// Delete removes the todo and returns the deleted record.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	if !validTodoID(id) {
		return nil, apperror.NewNotFoundError("todo not found", nil)
	}
	t, err := s.Repo.DeleteByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrStoreErr(err)
	}
	return t, nil
}

// validTodoID rejects path ids that cannot possibly match a stored todo.
// A malformed id answers 404, not 400, so it is indistinguishable from a
// miss.
func validTodoID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFoundOrStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError("todo not found", nil)
	}
	return apperror.NewDatabaseError("todo store failure", err)
}
