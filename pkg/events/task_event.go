package events

import "time"

// Task event types published to the notification queue.
const (
	TaskAssigned  = "task_assigned"
	TaskCompleted = "task_completed"
)

// TaskEvent is the JSON payload put on the RabbitMQ queue when a task
// is assigned or completed. The notification worker turns it into an
// email for the recipient.
type TaskEvent struct {
	Type           string    `json:"type"`
	TaskID         int64     `json:"task_id"`
	Title          string    `json:"title"`
	OwnerID        int64     `json:"owner_id"`
	AssigneeID     int64     `json:"assignee_id,omitempty"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
