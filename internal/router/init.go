package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/config"
	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/todo-api/internal/interface/http"
	"github.com/oksasatya/todo-api/internal/router/modules"
	"github.com/oksasatya/todo-api/pkg/token"
)

// Deps carries everything main constructed, passed explicitly so no
// package holds ambient state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Codec  *token.Codec
}

// InitModules wires repositories, services and handlers, and registers
// all feature modules with the router registry. Called once at startup.
func InitModules(reg *Registry, d Deps) {
	userRepo := postgres.NewUserRepository(d.Pool)
	todoRepo := postgres.NewTodoRepository(d.Pool)

	users := application.NewUserService(userRepo, d.Codec, d.Logger)
	todos := application.NewTodoService(todoRepo, d.Logger)

	reg.Add(modules.NewUserModule(handlers.NewUserHandler(users, d.Logger), users, d.Redis))
	reg.Add(modules.NewTodoModule(handlers.NewTodoHandler(todos, d.Logger), users, d.Redis))
	if d.Cfg.DebugMetricsEnabled {
		reg.Add(modules.NewDebugModule(d.Redis))
	}
}
