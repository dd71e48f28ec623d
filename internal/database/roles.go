package database

import (
	"context"

	"gorm.io/gorm"

	"project-tracker/internal/models"
)

type RoleStore struct {
	db *gorm.DB
}

func NewRoleStore(db *gorm.DB) *RoleStore {
	return &RoleStore{db: db}
}

func (s *RoleStore) first(ctx context.Context, query any, args ...any) (*models.Role, error) {
	var r models.Role
	if err := s.db.WithContext(ctx).Where(query, args...).First(&r).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *RoleStore) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *RoleStore) FindByRoleName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	return s.first(ctx, "role_name = ?", name)
}

func (s *RoleStore) FindAll(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *RoleStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	r, err := s.FindByID(ctx, id)
	return r != nil, err
}

func (s *RoleStore) ExistsByRoleName(ctx context.Context, name models.RoleName) (bool, error) {
	r, err := s.FindByRoleName(ctx, name)
	return r != nil, err
}

func (s *RoleStore) Create(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *RoleStore) Save(ctx context.Context, r *models.Role) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *RoleStore) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Role{}, id).Error
}
