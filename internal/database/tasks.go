package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"project-tracker/internal/models"
)

type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *TaskStore) where(ctx context.Context, query any, args ...any) ([]models.Task, error) {
	q := s.db.WithContext(ctx).Order("id")
	if query != nil {
		q = q.Where(query, args...)
	}

	var out []models.Task
	err := q.Find(&out).Error
	return out, err
}

func (s *TaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	return s.where(ctx, nil)
}

func (s *TaskStore) FindByAssignedUserID(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.where(ctx, "assigned_user_id = ?", userID)
}

func (s *TaskStore) FindByProjectID(ctx context.Context, projectID uint) ([]models.Task, error) {
	return s.where(ctx, "project_id = ?", projectID)
}

func (s *TaskStore) FindByStatus(ctx context.Context, status bool) ([]models.Task, error) {
	return s.where(ctx, "status = ?", status)
}

func (s *TaskStore) FindOverdue(ctx context.Context, day time.Time) ([]models.Task, error) {
	return s.where(ctx, "status = ? AND due_date < ?", false, models.DateOf(day))
}

func (s *TaskStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *TaskStore) Create(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *TaskStore) Save(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *TaskStore) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
