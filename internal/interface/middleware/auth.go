package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskhub-api/internal/application"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/pkg/response"
)

// Auth resolves the acting user from the access token cookie and the
// Redis session, and stores the actor for the dispatchers. Requests
// that cannot be resolved never reach a dispatcher.
func Auth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{Success: false, Reason: "Missing access token"})
			return
		}
		actor, err := auth.Session(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{Success: false, Reason: "Invalid or expired session"})
			return
		}
		c.Set(dispatch.ActorKey, actor)
		c.Next()
	}
}
