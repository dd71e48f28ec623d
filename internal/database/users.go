package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-tracker/internal/models"
)

// UserStore always preloads the user's role.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) first(ctx context.Context, query any, args ...any) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Preload("Role").Where(query, args...).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).Preload("Role").Order("id").Find(&out).Error
	return out, err
}

func (s *UserStore) count(ctx context.Context, query any, args ...any) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&n).Error
	return n > 0, err
}

func (s *UserStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.count(ctx, "id = ?", id)
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.count(ctx, "username = ?", username)
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.count(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *UserStore) ExistsByRoleID(ctx context.Context, roleID uint) (bool, error) {
	return s.count(ctx, "role_id = ?", roleID)
}

// roles are never written through a user
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (s *UserStore) Save(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
}

func (s *UserStore) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, id).Error
}
