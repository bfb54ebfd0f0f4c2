package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
)

// TaskHandler exposes the tasks resource through the single action
// endpoint.
type TaskHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		dispatcher: dispatch.New("task", logger, map[dispatch.Action]dispatch.HandlerFunc{
			dispatch.ActionCreate: svc.Create,
			dispatch.ActionEdit:   svc.Edit,
			dispatch.ActionView:   svc.View,
		}),
	}
}

func (h *TaskHandler) Handle(c *gin.Context) {
	h.dispatcher.Handle(c)
}
