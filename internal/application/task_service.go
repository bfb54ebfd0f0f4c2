package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/dispatch"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/internal/domain/repository"
	"github.com/oksasatya/taskhub-api/internal/validation"
	"github.com/oksasatya/taskhub-api/pkg/events"
	"github.com/oksasatya/taskhub-api/pkg/helpers"
	"github.com/oksasatya/taskhub-api/pkg/pagination"
)

// TaskService executes the create/edit/view actions for the tasks
// resource. Event publishing and search indexing are best-effort side
// channels; they never fail a request.
type TaskService struct {
	Repo         repository.TaskRepository
	Users        repository.UserRepository
	Publisher    *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESTasksIndex string
	Logger       *logrus.Logger
}

func NewTaskService(repo repository.TaskRepository, users repository.UserRepository, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: repo, Users: users, Publisher: pub, ES: es, ESTasksIndex: esIndex, Logger: logger}
}

var taskUpdatableFields = []string{"title", "description", "status", "priority", "due_date", "assignee_id"}

type taskCreateRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	OwnerID     int64      `json:"owner_id"`
	AssigneeID  *int64     `json:"assignee_id"`
}

type taskEditRequest struct {
	ID          int64      `json:"id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *int64     `json:"assignee_id"`
}

type taskViewRequest struct {
	ID           *int64  `json:"id"`
	IncludeOwner bool    `json:"include_owner"`
	OwnerID      *int64  `json:"owner_id"`
	AssigneeID   *int64  `json:"assignee_id"`
	Status       *string `json:"status"`
	Search       *string `json:"search"`
	Page         *int    `json:"page"`
	Size         *int    `json:"size"`
}

func taskPayload(t *entity.Task) map[string]any {
	return map[string]any{
		"id":           t.ID,
		"title":        t.Title,
		"description":  t.Description,
		"status":       t.Status,
		"priority":     t.Priority,
		"due_date":     t.DueDate,
		"completed_at": t.CompletedAt,
		"owner_id":     t.OwnerID,
		"assignee_id":  t.AssigneeID,
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}

// validateEnums checks the optional status/priority enum fields.
func validateEnums(status, priority *string) error {
	if status != nil {
		if err := validation.Enum("status", *status); err != nil {
			return err
		}
	}
	if priority != nil {
		if err := validation.Enum("priority", *priority); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	if err := validation.RequireFields(p, "title", "owner_id"); err != nil {
		return dispatch.Result{}, err
	}
	var req taskCreateRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.Length("title", req.Title, 1, 200); err != nil {
		return dispatch.Result{}, err
	}
	if req.Description != nil {
		if err := validation.Length("description", *req.Description, 0, 2000); err != nil {
			return dispatch.Result{}, err
		}
	}
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return dispatch.Result{}, err
	}

	// Any authenticated actor may create a task; no gate beyond the
	// resolved actor itself.

	owner, err := s.Users.GetByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dispatch.Result{}, apperr.Business("Owner user not found")
		}
		return dispatch.Result{}, err
	}

	var assignee *entity.User
	if req.AssigneeID != nil {
		assignee, err = s.Users.GetByID(ctx, *req.AssigneeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dispatch.Result{}, apperr.Business("Assignee user not found")
			}
			return dispatch.Result{}, err
		}
	}

	t := &entity.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TaskStatusPending,
		Priority:    entity.TaskPriorityMedium,
		DueDate:     req.DueDate,
		OwnerID:     owner.ID,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != nil {
		t.Status = entity.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		t.Priority = entity.TaskPriority(*req.Priority)
	}
	if t.Status == entity.TaskStatusCompleted {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}

	if err := s.Repo.Insert(ctx, t); err != nil {
		return dispatch.Result{}, err
	}

	if assignee != nil {
		s.publish(ctx, events.TaskEvent{
			Type:           events.TaskAssigned,
			TaskID:         t.ID,
			Title:          t.Title,
			OwnerID:        t.OwnerID,
			AssigneeID:     assignee.ID,
			RecipientEmail: assignee.Email,
			OccurredAt:     time.Now().UTC(),
		})
	}
	s.indexTask(ctx, t)

	s.Logger.WithFields(logrus.Fields{"task_id": t.ID, "owner_id": t.OwnerID}).Info("task created")
	return dispatch.Result{Data: taskPayload(t), Message: "Task created successfully"}, nil
}

func (s *TaskService) Edit(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	if err := validation.RequireFields(p, "id"); err != nil {
		return dispatch.Result{}, err
	}
	if err := validation.RequireUpdatable(p, taskUpdatableFields...); err != nil {
		return dispatch.Result{}, err
	}
	var req taskEditRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}
	if req.Title != nil {
		if err := validation.Length("title", *req.Title, 1, 200); err != nil {
			return dispatch.Result{}, err
		}
	}
	if req.Description != nil {
		if err := validation.Length("description", *req.Description, 0, 2000); err != nil {
			return dispatch.Result{}, err
		}
	}
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return dispatch.Result{}, err
	}

	t, err := s.Repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dispatch.Result{}, apperr.Business("Task not found")
		}
		return dispatch.Result{}, err
	}

	if err := canEditTask(actor, t); err != nil {
		return dispatch.Result{}, err
	}

	var completedNow *entity.User
	if req.AssigneeID != nil {
		if _, err := s.Users.GetByID(ctx, *req.AssigneeID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dispatch.Result{}, apperr.Business("Assignee user not found")
			}
			return dispatch.Result{}, err
		}
		t.AssigneeID = req.AssigneeID
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Priority != nil {
		t.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		next := entity.TaskStatus(*req.Status)
		switch {
		case next == entity.TaskStatusCompleted && t.Status != entity.TaskStatusCompleted:
			now := time.Now().UTC()
			t.CompletedAt = &now
			if owner, err := s.Users.GetByID(ctx, t.OwnerID); err == nil {
				completedNow = owner
			}
		case next != entity.TaskStatusCompleted && t.Status == entity.TaskStatusCompleted:
			t.CompletedAt = nil
		}
		t.Status = next
	}

	if err := s.Repo.Update(ctx, t); err != nil {
		return dispatch.Result{}, err
	}

	if completedNow != nil {
		s.publish(ctx, events.TaskEvent{
			Type:           events.TaskCompleted,
			TaskID:         t.ID,
			Title:          t.Title,
			OwnerID:        t.OwnerID,
			RecipientEmail: completedNow.Email,
			OccurredAt:     time.Now().UTC(),
		})
	}
	s.indexTask(ctx, t)

	s.Logger.WithField("task_id", t.ID).Info("task updated")
	return dispatch.Result{Data: taskPayload(t), Message: "Task updated successfully"}, nil
}

func (s *TaskService) View(ctx context.Context, actor entity.Actor, p dispatch.Payload) (dispatch.Result, error) {
	var req taskViewRequest
	if err := p.Decode(&req); err != nil {
		return dispatch.Result{}, err
	}

	if req.ID != nil {
		return s.viewByID(ctx, actor, &req)
	}

	if req.Status != nil {
		if err := validation.Enum("status", *req.Status); err != nil {
			return dispatch.Result{}, err
		}
	}

	page, size := 1, pagination.DefaultSize
	if req.Page != nil {
		page = *req.Page
	}
	if req.Size != nil {
		size = *req.Size
	}
	page, size, skip := pagination.Normalize(page, size)

	filter := repository.TaskFilter{
		AssigneeID: req.AssigneeID,
		Search:     req.Search,
	}
	if req.Status != nil {
		st := entity.TaskStatus(*req.Status)
		filter.Status = &st
	}
	// Non-admins only ever see tasks they own or are assigned to;
	// admins may additionally filter by any creator.
	if actor.IsAdmin() {
		filter.OwnerID = req.OwnerID
	} else {
		viewer := actor.ID
		filter.ViewerID = &viewer
		filter.OwnerID = req.OwnerID
	}

	if req.Search != nil && s.ES != nil && s.ESTasksIndex != "" {
		if list, total, err := s.searchTasks(ctx, *req.Search, filter, skip, size); err == nil {
			data := map[string]any{
				"tasks":      list,
				"pagination": pagination.Page{Page: page, Size: size, Total: total},
			}
			return dispatch.Result{Data: data, Message: "Tasks retrieved successfully"}, nil
		}
		// Search index unavailable; the repository scan below answers.
	}

	tasks, total, err := s.Repo.List(ctx, filter, skip, size)
	if err != nil {
		return dispatch.Result{}, err
	}
	list := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		list = append(list, taskPayload(&tasks[i]))
	}
	data := map[string]any{
		"tasks":      list,
		"pagination": pagination.Page{Page: page, Size: size, Total: total},
	}
	return dispatch.Result{Data: data, Message: "Tasks retrieved successfully"}, nil
}

func (s *TaskService) viewByID(ctx context.Context, actor entity.Actor, req *taskViewRequest) (dispatch.Result, error) {
	t, err := s.Repo.GetByID(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dispatch.Result{}, apperr.Business("Task not found")
		}
		return dispatch.Result{}, err
	}
	if err := canViewTask(actor, t); err != nil {
		return dispatch.Result{}, err
	}

	data := taskPayload(t)
	if req.IncludeOwner {
		owner, err := s.Users.GetByID(ctx, t.OwnerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return dispatch.Result{}, err
		}
		if owner != nil {
			data["owner"] = map[string]any{
				"id":        owner.ID,
				"username":  owner.Username,
				"email":     owner.Email,
				"full_name": owner.FullName,
			}
		}
	}
	return dispatch.Result{Data: data, Message: "Task retrieved successfully"}, nil
}

// publish puts a task event on the notification queue. Failures are
// logged and swallowed; notifications never fail the request.
func (s *TaskService) publish(ctx context.Context, ev events.TaskEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("task_id", ev.TaskID).Warn("task event publish failed")
	}
}
