package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/pkg/response"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestParseRequestNestedData(t *testing.T) {
	body := strings.NewReader(`{"action":"create","data":{"title":"write docs","owner_id":1}}`)
	action, payload, err := ParseRequest(body)
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, action)
	assert.True(t, payload.Has("title"))
	assert.True(t, payload.Has("owner_id"))
	assert.False(t, payload.Has("action"))
}

func TestParseRequestFlattened(t *testing.T) {
	body := strings.NewReader(`{"action":"view","id":42}`)
	action, payload, err := ParseRequest(body)
	require.NoError(t, err)
	assert.Equal(t, ActionView, action)
	assert.True(t, payload.Has("id"))
	assert.False(t, payload.Has("action"))
}

func TestParseRequestNullData(t *testing.T) {
	body := strings.NewReader(`{"action":"view","data":null}`)
	action, payload, err := ParseRequest(body)
	require.NoError(t, err)
	assert.Equal(t, ActionView, action)
	assert.NotNil(t, payload)
	assert.Len(t, payload, 0)
}

func TestParseRequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"invalid json", `{"action":`, "Invalid request body"},
		{"missing action", `{"data":{}}`, "Missing required field: action"},
		{"non-string action", `{"action":7}`, "Invalid value for field: action"},
		{"unknown action", `{"action":"delete"}`, "Invalid action: delete"},
		{"non-object data", `{"action":"view","data":"oops"}`, "Invalid value for field: data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseRequest(strings.NewReader(tc.body))
			require.Error(t, err)
			reason, ok := apperr.ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func dispatchRequest(t *testing.T, handlers map[Action]HandlerFunc, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	d := New("task", testLogger(), handlers)
	r.POST("/tasks", func(c *gin.Context) {
		c.Set(ActorKey, entity.Actor{ID: 1, Role: entity.RoleUser})
		d.Handle(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
	r.ServeHTTP(w, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestHandleSuccess(t *testing.T) {
	handlers := map[Action]HandlerFunc{
		ActionView: func(ctx context.Context, actor entity.Actor, p Payload) (Result, error) {
			return Result{Data: map[string]any{"id": float64(7)}, Message: "Task retrieved successfully"}, nil
		},
	}
	w, env := dispatchRequest(t, handlers, `{"action":"view","id":7}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Task retrieved successfully", env.Message)
	assert.Empty(t, env.Reason)
}

func TestHandleBusinessFailureKeeps200(t *testing.T) {
	handlers := map[Action]HandlerFunc{
		ActionEdit: func(ctx context.Context, actor entity.Actor, p Payload) (Result, error) {
			return Result{}, apperr.Business("Task not found")
		},
	}
	w, env := dispatchRequest(t, handlers, `{"action":"edit","id":999}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Task not found", env.Reason)
	assert.Nil(t, env.Data)
}

func TestHandleInfrastructureFaultIs500(t *testing.T) {
	handlers := map[Action]HandlerFunc{
		ActionCreate: func(ctx context.Context, actor entity.Actor, p Payload) (Result, error) {
			return Result{}, errors.New("connection refused")
		},
	}
	w, env := dispatchRequest(t, handlers, `{"action":"create","title":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to process task action", env.Reason)
	// Fault detail stays in the log, never in the envelope.
	assert.NotContains(t, env.Reason, "connection refused")
}

func TestHandleUnregisteredAction(t *testing.T) {
	w, env := dispatchRequest(t, map[Action]HandlerFunc{}, `{"action":"view"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid action: view", env.Reason)
}

func TestHandleInvalidBody(t *testing.T) {
	w, env := dispatchRequest(t, map[Action]HandlerFunc{}, `not json`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid request body", env.Reason)
}

func TestPayloadDecodeTypeMismatch(t *testing.T) {
	p := Payload{"id": json.RawMessage(`"abc"`)}
	var req struct {
		ID int64 `json:"id"`
	}
	err := p.Decode(&req)
	require.Error(t, err)
	reason, ok := apperr.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid value for field: id", reason)
}
