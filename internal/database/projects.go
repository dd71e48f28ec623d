package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-tracker/internal/models"
)

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) FindAll(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *ProjectStore) FindPage(ctx context.Context, offset, limit int) ([]models.Project, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Project
	err := s.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&out).Error
	return out, total, err
}

func (s *ProjectStore) FindSummaryPage(ctx context.Context, offset, limit int) ([]models.ProjectSummary, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.ProjectSummary
	err := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("id", "name", "status").
		Order("id").
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	return out, total, err
}

func (s *ProjectStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (s *ProjectStore) Save(ctx context.Context, p *models.Project) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// DeleteByID removes the project's tasks and the project in one transaction.
func (s *ProjectStore) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
