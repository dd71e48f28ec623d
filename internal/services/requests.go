package services

import "project-tracker/internal/models"

// Update requests use pointers so an absent field leaves the stored value
// alone. Status flags are plain bools and are always written.

type CreateProjectRequest struct {
	Name        string       `json:"name" validate:"required,max=255"`
	Description string       `json:"description"`
	Deadline    *models.Date `json:"deadline"`
	Status      bool         `json:"status"`
}

type UpdateProjectRequest struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description"`
	Deadline    *models.Date `json:"deadline"`
	Status      bool         `json:"status"`
}

type CreateTaskRequest struct {
	Title          string       `json:"title" validate:"required,max=255"`
	Description    string       `json:"description"`
	Status         bool         `json:"status"`
	DueDate        *models.Date `json:"dueDate"`
	ProjectID      uint         `json:"projectId" validate:"required"`
	AssignedUserID *uint        `json:"assignedUserId"`
}

type UpdateTaskRequest struct {
	Title          *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string      `json:"description"`
	Status         bool         `json:"status"`
	DueDate        *models.Date `json:"dueDate"`
	ProjectID      *uint        `json:"projectId"`
	AssignedUserID *uint        `json:"assignedUserId"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName"`
	Skills   string `json:"skills"`
	RoleID   uint   `json:"roleId" validate:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	FullName *string `json:"fullName"`
	Skills   *string `json:"skills"`
	RoleID   *uint   `json:"roleId"`
}

type RoleRequest struct {
	RoleName string `json:"roleName" validate:"required"`
}

type LoginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"usernameOrEmail" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName"`
}

func (r UpdateProjectRequest) apply(p *models.Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Deadline != nil {
		d := *r.Deadline
		p.Deadline = &d
	}
	p.Status = r.Status
}
