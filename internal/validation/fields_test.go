package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
)

func payloadOf(t *testing.T, fields map[string]any) dispatch.Payload {
	t.Helper()
	p := make(dispatch.Payload, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		p[k] = raw
	}
	return p
}

func TestRequireFields(t *testing.T) {
	p := payloadOf(t, map[string]any{"username": "alice", "email": "a@b.co"})

	assert.NoError(t, RequireFields(p, "username", "email"))

	err := RequireFields(p, "username", "password")
	require.Error(t, err)
	reason, ok := apperr.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, "Missing required field: password", reason)
}

func TestRequireFieldsPresentButNull(t *testing.T) {
	// Presence is about the key, not the value.
	p := dispatch.Payload{"title": json.RawMessage("null")}
	assert.NoError(t, RequireFields(p, "title"))
}

func TestRequireUpdatable(t *testing.T) {
	p := payloadOf(t, map[string]any{"id": 1, "unknown": "x"})
	err := RequireUpdatable(p, "title", "status")
	require.Error(t, err)
	reason, _ := apperr.ReasonOf(err)
	assert.Equal(t, "No valid fields to update", reason)

	p = payloadOf(t, map[string]any{"id": 1, "status": "pending"})
	assert.NoError(t, RequireUpdatable(p, "title", "status"))
}

func TestEnum(t *testing.T) {
	assert.NoError(t, Enum("status", "in_progress"))
	assert.NoError(t, Enum("priority", "urgent"))
	assert.NoError(t, Enum("role", "admin"))
	// Unregistered fields pass.
	assert.NoError(t, Enum("color", "purple"))

	err := Enum("status", "done")
	require.Error(t, err)
	reason, _ := apperr.ReasonOf(err)
	assert.Equal(t, "Invalid status: done", reason)

	err = Enum("priority", "asap")
	require.Error(t, err)
	reason, _ = apperr.ReasonOf(err)
	assert.Equal(t, "Invalid priority: asap", reason)
}

func TestLength(t *testing.T) {
	assert.NoError(t, Length("username", "alice", 3, 50))

	err := Length("full_name", "   ", 2, 100)
	require.Error(t, err)
	reason, _ := apperr.ReasonOf(err)
	assert.Equal(t, "Full name cannot be empty", reason)

	err = Length("username", "ab", 3, 50)
	require.Error(t, err)
	reason, _ = apperr.ReasonOf(err)
	assert.Equal(t, "Username must be at least 3 characters", reason)

	err = Length("username", strings.Repeat("a", 60), 3, 50)
	require.Error(t, err)
	reason, _ = apperr.ReasonOf(err)
	assert.Equal(t, "Username must be at most 50 characters", reason)
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("alice@example.com"))

	err := Email("not-an-email")
	require.Error(t, err)
	reason, _ := apperr.ReasonOf(err)
	assert.Equal(t, "Invalid email: not-an-email", reason)
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("Sup3rSecret"))

	cases := []struct {
		password string
		reason   string
	}{
		{"Ab1", "Password must be at least 8 characters long"},
		{"alllowercase1", "Password must contain at least one uppercase letter"},
		{"NoDigitsHere", "Password must contain at least one number"},
	}
	for _, tc := range cases {
		err := Password(tc.password)
		require.Error(t, err)
		reason, ok := apperr.ReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, tc.reason, reason)
	}
}
