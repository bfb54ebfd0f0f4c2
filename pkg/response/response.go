package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body for every endpoint. Success and
// business failures both travel with status 200; only infrastructure
// faults use 500. Clients branch on Success, never on the status code.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// OK writes a success envelope with status 200.
func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a business-failure envelope, still with status 200.
func Fail(c *gin.Context, reason string) {
	c.JSON(http.StatusOK, Envelope{Success: false, Reason: reason})
}

// ServerError writes an infrastructure-failure envelope with status 500.
// The reason stays generic; fault detail belongs in the server log only.
func ServerError(c *gin.Context, reason string) {
	if reason == "" {
		reason = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Reason: reason})
}
