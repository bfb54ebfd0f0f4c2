package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
)

// UserHandler exposes the users resource through the single action
// endpoint. All routing below the endpoint is by the action field.
type UserHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		dispatcher: dispatch.New("user", logger, map[dispatch.Action]dispatch.HandlerFunc{
			dispatch.ActionCreate: svc.Create,
			dispatch.ActionEdit:   svc.Edit,
			dispatch.ActionView:   svc.View,
		}),
	}
}

func (h *UserHandler) Handle(c *gin.Context) {
	h.dispatcher.Handle(c)
}
