package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/todo-api/internal/application"
	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
)

// UserModule wires the user routes.
// Public: POST /users (signup), POST /users/login.
// Protected: GET /users/me, DELETE /users/me/token.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   *application.UserService
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, users *application.UserService, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Users: users, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// public, rate limited per IP to slow credential stuffing
	signupLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users", signupLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Users))
	{
		auth.GET("/me", m.Handler.Me)
		auth.DELETE("/me/token", m.Handler.Logout)
	}
}
