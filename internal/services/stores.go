package services

import (
	"context"
	"time"

	"project-tracker/internal/models"
)

// Finders return (nil, nil) when the row does not exist.

type ProjectStore interface {
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	FindPage(ctx context.Context, offset, limit int) ([]models.Project, int64, error)
	FindSummaryPage(ctx context.Context, offset, limit int) ([]models.ProjectSummary, int64, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, p *models.Project) error
	Save(ctx context.Context, p *models.Project) error
	// DeleteByID removes the project and every task that belongs to it.
	DeleteByID(ctx context.Context, id uint) error
}

type TaskStore interface {
	FindByID(ctx context.Context, id uint) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByAssignedUserID(ctx context.Context, userID uint) ([]models.Task, error)
	FindByProjectID(ctx context.Context, projectID uint) ([]models.Task, error)
	FindByStatus(ctx context.Context, status bool) ([]models.Task, error)
	// FindOverdue returns open tasks due strictly before day.
	FindOverdue(ctx context.Context, day time.Time) ([]models.Task, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, t *models.Task) error
	Save(ctx context.Context, t *models.Task) error
	DeleteByID(ctx context.Context, id uint) error
}

// UserStore returns users with Role populated.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRoleID(ctx context.Context, roleID uint) (bool, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	DeleteByID(ctx context.Context, id uint) error
}

type RoleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	FindByRoleName(ctx context.Context, name models.RoleName) (*models.Role, error)
	FindAll(ctx context.Context) ([]models.Role, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByRoleName(ctx context.Context, name models.RoleName) (bool, error)
	Create(ctx context.Context, r *models.Role) error
	Save(ctx context.Context, r *models.Role) error
	DeleteByID(ctx context.Context, id uint) error
}
