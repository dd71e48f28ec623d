// Package policy decides whether a principal may perform an operation on a
// resource type. Decisions are pure: callers load whatever resource state a
// rule needs and pass it in.
package policy

import (
	"context"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
)

type Operation string

const (
	OpCreate Operation = "CREATE"
	OpRead   Operation = "READ"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

type ResourceType string

const (
	ResourceProject ResourceType = "PROJECT"
	ResourceTask    ResourceType = "TASK"
	ResourceUser    ResourceType = "USER"
	ResourceRole    ResourceType = "ROLE"
)

// Resource carries the state of the target that ownership rules look at.
// Only TASK UPDATE reads it.
type Resource struct {
	AssignedUserID *uint
}

// TaskResource builds the ownership context for a task.
func TaskResource(t models.Task) Resource {
	return Resource{AssignedUserID: t.AssignedUserID}
}

// CheckAccess returns nil when the principal may perform op on rt, or an
// AccessDenied error carrying the reason.
func CheckAccess(p models.Principal, op Operation, rt ResourceType, rc Resource) error {
	if !p.Role.Valid() {
		return apperror.AccessDenied("Unknown role")
	}

	switch rt {
	case ResourceUser:
		return checkUser(p.Role)
	case ResourceProject:
		return checkProject(p.Role, op)
	case ResourceTask:
		if op == OpUpdate {
			return checkTaskUpdate(p, rc)
		}
		return nil
	case ResourceRole:
		return nil
	}
	return apperror.AccessDenied("Unknown resource type")
}

func checkUser(role models.RoleName) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleManager, models.RoleDeveloper, models.RoleContractor:
		return apperror.AccessDenied("Only administrators can manage users")
	}
	return apperror.AccessDenied("Unknown role")
}

func checkProject(role models.RoleName, op Operation) error {
	if op == OpRead {
		return nil
	}
	switch role {
	case models.RoleAdmin, models.RoleManager:
		return nil
	case models.RoleDeveloper, models.RoleContractor:
		return apperror.AccessDenied("Only managers and administrators can modify projects")
	}
	return apperror.AccessDenied("Unknown role")
}

// only developers update tasks, and only their own
func checkTaskUpdate(p models.Principal, rc Resource) error {
	switch p.Role {
	case models.RoleAdmin, models.RoleManager, models.RoleContractor:
		return apperror.AccessDenied("You don't have permission to update this task")
	case models.RoleDeveloper:
		if rc.AssignedUserID != nil && *rc.AssignedUserID == p.ID {
			return nil
		}
		return apperror.AccessDenied("You can only update tasks assigned to you")
	}
	return apperror.AccessDenied("Unknown role")
}

// TaskLookup is the slice of the task store ownership checks need.
type TaskLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Task, error)
}

// CheckTaskUpdate loads the task and applies the ownership rule. A missing
// task fails with NotFound before any role decision is made.
func CheckTaskUpdate(ctx context.Context, tasks TaskLookup, p models.Principal, taskID uint) (*models.Task, error) {
	task, err := tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound(models.EntityTask, taskID)
	}
	if err := CheckAccess(p, OpUpdate, ResourceTask, TaskResource(*task)); err != nil {
		return nil, err
	}
	return task, nil
}
