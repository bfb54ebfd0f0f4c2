// Package dispatch implements the single-endpoint action protocol:
// every resource accepts one POST whose body carries an action
// discriminator (create, edit, view) and a payload, and every outcome
// is reported through the uniform response envelope. Business failures
// keep transport status 200; only unanticipated faults produce 500.
package dispatch

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/pkg/response"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionView   Action = "view"
)

// Result is what a handler produces on success: the envelope data and
// its human-readable message.
type Result struct {
	Data    any
	Message string
}

// HandlerFunc executes one action for one resource on behalf of an actor.
type HandlerFunc func(ctx context.Context, actor entity.Actor, p Payload) (Result, error)

// Dispatcher routes parsed actions to their handlers and owns the
// validate-before-authorize-before-execute outcome classification.
type Dispatcher struct {
	resource string
	logger   *logrus.Logger
	handlers map[Action]HandlerFunc
}

func New(resource string, logger *logrus.Logger, handlers map[Action]HandlerFunc) *Dispatcher {
	return &Dispatcher{resource: resource, logger: logger, handlers: handlers}
}

// ActorKey is the gin context key the auth middleware stores the
// resolved actor under.
const ActorKey = "actor"

// Handle is the gin endpoint for the resource. It parses the action
// request, runs the matching handler, and always terminates in exactly
// one envelope write.
func (d *Dispatcher) Handle(c *gin.Context) {
	actorVal, ok := c.Get(ActorKey)
	if !ok {
		// Auth middleware is supposed to reject unresolved actors first.
		d.logger.WithField("resource", d.resource).Error("actor missing from request context")
		response.ServerError(c, "Failed to process "+d.resource+" action")
		return
	}
	actor := actorVal.(entity.Actor)

	action, payload, err := ParseRequest(c.Request.Body)
	if err != nil {
		d.write(c, Result{}, err)
		return
	}

	handler, ok := d.handlers[action]
	if !ok {
		d.write(c, Result{}, apperr.Businessf("Invalid action: %s", action))
		return
	}

	d.logger.WithFields(logrus.Fields{
		"resource":   d.resource,
		"action":     string(action),
		"actor_id":   actor.ID,
		"request_id": c.GetString("request_id"),
	}).Info("processing action")

	res, err := handler(c.Request.Context(), actor, payload)
	d.write(c, res, err)
}

// write maps a handler outcome onto the envelope. This is the single
// error-classification point: business errors become 200 failures,
// anything else is an infrastructure fault.
func (d *Dispatcher) write(c *gin.Context, res Result, err error) {
	if err == nil {
		response.OK(c, res.Data, res.Message)
		return
	}
	if reason, ok := apperr.ReasonOf(err); ok {
		d.logger.WithFields(logrus.Fields{
			"resource":   d.resource,
			"request_id": c.GetString("request_id"),
		}).Warn(reason)
		response.Fail(c, reason)
		return
	}
	d.logger.WithFields(logrus.Fields{
		"resource":   d.resource,
		"request_id": c.GetString("request_id"),
		"error":      err.Error(),
	}).Error("action failed")
	response.ServerError(c, "Failed to process "+d.resource+" action")
}

// ParseRequest reads an action request body. Both shapes are accepted:
// the canonical {"action": ..., "data": {...}} and the flattened form
// where payload fields sit next to "action" at the top level.
func ParseRequest(body io.Reader) (Action, Payload, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&top); err != nil {
		return "", nil, apperr.Business("Invalid request body")
	}

	rawAction, ok := top["action"]
	if !ok {
		return "", nil, apperr.Business("Missing required field: action")
	}
	var actionStr string
	if err := json.Unmarshal(rawAction, &actionStr); err != nil {
		return "", nil, apperr.Business("Invalid value for field: action")
	}

	action := Action(actionStr)
	switch action {
	case ActionCreate, ActionEdit, ActionView:
	default:
		return "", nil, apperr.Businessf("Invalid action: %s", actionStr)
	}

	if rawData, ok := top["data"]; ok {
		var data Payload
		if err := json.Unmarshal(rawData, &data); err != nil {
			return "", nil, apperr.Business("Invalid value for field: data")
		}
		if data == nil {
			data = Payload{}
		}
		return action, data, nil
	}

	// Flattened form: everything except the discriminator is payload.
	data := make(Payload, len(top)-1)
	for k, v := range top {
		if k == "action" {
			continue
		}
		data[k] = v
	}
	return action, data, nil
}
