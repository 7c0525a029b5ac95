package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todo-api/internal/application"
	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
)

// TodoModule wires the todo CRUD routes. All of them require auth; the
// handlers scope every store call to the authenticated owner.
type TodoModule struct {
	Handler *handlers.TodoHandler
	Users   *application.UserService
	Redis   *redis.Client
}

func NewTodoModule(h *handlers.TodoHandler, users *application.UserService, rdb *redis.Client) *TodoModule {
	return &TodoModule{Handler: h, Users: users, Redis: rdb}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/todos")
	auth.Use(middleware.Auth(m.Users))
	auth.Use(middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP()))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:id", m.Handler.Get)
		auth.PATCH("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
