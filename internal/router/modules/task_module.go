package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/container"
	handlers "github.com/oksasatya/taskhub-api/internal/interface/http"
	"github.com/oksasatya/taskhub-api/internal/interface/middleware"
)

// TaskModule exposes the tasks resource: one authenticated POST whose
// body selects the action.

type TaskModule struct {
	Handler *handlers.TaskHandler
	Auth    *application.AuthService
}

func NewTaskModule(h *handlers.TaskHandler, auth *application.AuthService) *TaskModule {
	return &TaskModule{Handler: h, Auth: auth}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByActor(), nil),
	)
	{
		auth.POST("/tasks", m.Handler.Handle)
	}
}
