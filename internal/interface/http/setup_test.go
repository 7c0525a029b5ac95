package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/domain/entity"
	"github.com/oksasatya/todo-api/internal/domain/repository"
	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/router/modules"
	"github.com/oksasatya/todo-api/pkg/token"
	"github.com/oksasatya/todo-api/pkg/validation"
)

type memUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	cp.Tokens = append([]entity.AuthToken{}, u.Tokens...)
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			cp.Tokens = append([]entity.AuthToken{}, u.Tokens...)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByToken(_ context.Context, purpose, tok string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		for _, e := range u.Tokens {
			if e.Purpose == purpose && e.Token == tok {
				cp := *u
				cp.Tokens = append([]entity.AuthToken{}, u.Tokens...)
				return &cp, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) AddToken(_ context.Context, userID string, t entity.AuthToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == userID {
			u.Tokens = append(u.Tokens, t)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUserRepo) RemoveToken(_ context.Context, userID string, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == userID {
			kept := u.Tokens[:0]
			for _, e := range u.Tokens {
				if e.Token != tok {
					kept = append(kept, e)
				}
			}
			u.Tokens = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memUserRepo) tokensOf(email string) []entity.AuthToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return append([]entity.AuthToken{}, u.Tokens...)
		}
	}
	return nil
}

type memTodoRepo struct {
	mu    sync.Mutex
	todos []*entity.Todo
}

func (m *memTodoRepo) Create(_ context.Context, t *entity.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.todos = append(m.todos, &cp)
	return nil
}

func (m *memTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Todo{}
	for _, t := range m.todos {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTodoRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTodoRepo) Update(_ context.Context, ownerID, id string, upd repository.TodoUpdate) (*entity.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			if upd.Text != nil {
				t.Text = *upd.Text
			}
			t.Completed = upd.Completed
			t.CompletedAt = upd.CompletedAt
			t.UpdatedAt = time.Now()
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTodoRepo) DeleteByID(_ context.Context, ownerID, id string) (*entity.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTodoRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.todos)
}

// newTestServer wires the real modules over in-memory repositories. A
// nil redis client turns the rate limiter into a passthrough.
func newTestServer(t *testing.T) (*gin.Engine, *memUserRepo, *memTodoRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := &memUserRepo{}
	todoRepo := &memTodoRepo{}
	users := application.NewUserService(userRepo, token.NewCodec("test-secret"), logger)
	todos := application.NewTodoService(todoRepo, logger)

	r := gin.New()
	modules.NewUserModule(handlers.NewUserHandler(users, logger), users, nil).Register(&r.RouterGroup)
	modules.NewTodoModule(handlers.NewTodoHandler(todos, logger), users, nil).Register(&r.RouterGroup)
	return r, userRepo, todoRepo
}

func doJSON(t *testing.T, h http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("x-auth", tok)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/users", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, "signup failed: %s", w.Body.String())
	tok := w.Header().Get("x-auth")
	require.NotEmpty(t, tok)
	return tok
}

func createTodo(t *testing.T, h http.Handler, tok, text string) map[string]any {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/todos", tok, gin.H{"text": text})
	require.Equal(t, http.StatusOK, w.Code, "create todo failed: %s", w.Body.String())
	return decodeBody(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
