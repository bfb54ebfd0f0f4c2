package router

import (
	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/container"
	pginfra "github.com/oksasatya/taskhub-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/taskhub-api/internal/interface/http"
	"github.com/oksasatya/taskhub-api/internal/router/modules"
	"github.com/oksasatya/taskhub-api/pkg/helpers"
)

// InitModules builds the services from the container singletons and
// registers every feature module with the router registry. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	taskRepo := pginfra.NewTaskRepository(container.GetPGPool())
	hasher := helpers.NewBcryptHasher()

	authSvc := application.NewAuthService(userRepo, hasher, container.GetJWT(), container.GetRedis(), logger)
	userSvc := application.NewUserService(userRepo, hasher, logger)
	taskSvc := application.NewTaskService(taskRepo, userRepo, container.GetRabbitPub(), container.GetES(), cfg.ESTasksIndex, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewUserModule(userHandler, authSvc))
	r.Add(modules.NewTaskModule(taskHandler, authSvc))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
