package repository

import (
	"context"

	"github.com/oksasatya/taskhub-api/internal/domain/entity"
)

// TaskFilter narrows a task listing. Nil fields are ignored.
// ViewerID restricts results to tasks the viewer owns or is assigned to;
// it is combined with the other filters, not an alternative to them.
type TaskFilter struct {
	OwnerID    *int64
	AssigneeID *int64
	Status     *entity.TaskStatus
	Search     *string
	ViewerID   *int64
}

// TaskRepository defines the persistence operations for tasks.
type TaskRepository interface {
	Insert(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	List(ctx context.Context, f TaskFilter, skip, limit int) ([]entity.Task, int64, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
