package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	handler(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestOK(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		OK(c, map[string]any{"id": 1}, "User created successfully")
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User created successfully", body["message"])
	assert.NotNil(t, body["data"])
	assert.NotContains(t, body, "reason")
}

func TestFailKeeps200(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		Fail(c, "Task not found")
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Task not found", body["reason"])
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "message")
}

func TestServerError(t *testing.T) {
	w, body := record(t, func(c *gin.Context) {
		ServerError(c, "")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["reason"])
}
