package application

import (
	"github.com/oksasatya/taskhub-api/internal/apperr"
	"github.com/oksasatya/taskhub-api/internal/domain/entity"
)

// Authorization gate. Every rule runs after the target is fetched and
// before any mutation; a denial is always a business failure with a
// resource-specific reason.

func canCreateUser(actor entity.Actor) error {
	if !actor.IsAdmin() {
		return apperr.Business("Not authorized to create users")
	}
	return nil
}

// canEditUser allows self-edits and admins.
func canEditUser(actor entity.Actor, target *entity.User) error {
	if target.ID != actor.ID && !actor.IsAdmin() {
		return apperr.Business("Not authorized to edit this user")
	}
	return nil
}

func canViewUser(actor entity.Actor, target *entity.User) error {
	if target.ID != actor.ID && !actor.IsAdmin() {
		return apperr.Business("Not authorized to view this user")
	}
	return nil
}

func canListUsers(actor entity.Actor) error {
	if !actor.IsAdmin() {
		return apperr.Business("Not authorized to list users")
	}
	return nil
}

// canEditTask allows the task's creator and its assignee.
func canEditTask(actor entity.Actor, t *entity.Task) error {
	if t.OwnerID == actor.ID {
		return nil
	}
	if t.AssigneeID != nil && *t.AssigneeID == actor.ID {
		return nil
	}
	return apperr.Business("Not authorized to edit this task")
}

// canViewTask allows the creator, the assignee, and admins.
func canViewTask(actor entity.Actor, t *entity.Task) error {
	if t.OwnerID == actor.ID || actor.IsAdmin() {
		return nil
	}
	if t.AssigneeID != nil && *t.AssigneeID == actor.ID {
		return nil
	}
	return apperr.Business("Not authorized to view this task")
}
