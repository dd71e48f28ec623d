package memory

import (
	"context"
	"errors"
	"time"

	"project-tracker/internal/models"
)

var errRoleTaken = errors.New("duplicate key value violates unique constraint \"roles_role_name\"")

type RoleStore struct {
	db *DB
}

func (s *RoleStore) FindByID(_ context.Context, id uint) (*models.Role, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	r, ok := s.db.roles[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *RoleStore) FindByRoleName(_ context.Context, name models.RoleName) (*models.Role, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, r := range s.db.roles {
		if r.RoleName == name {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *RoleStore) FindAll(_ context.Context) ([]models.Role, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]models.Role, 0, len(s.db.roles))
	for _, id := range sortedKeys(s.db.roles) {
		out = append(out, s.db.roles[id])
	}
	return out, nil
}

func (s *RoleStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.roles[id]
	return ok, nil
}

func (s *RoleStore) ExistsByRoleName(ctx context.Context, name models.RoleName) (bool, error) {
	r, _ := s.FindByRoleName(ctx, name)
	return r != nil, nil
}

func (s *RoleStore) Create(_ context.Context, r *models.Role) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, other := range s.db.roles {
		if other.RoleName == r.RoleName {
			return errRoleTaken
		}
	}
	s.db.nextRoleID++
	r.ID = s.db.nextRoleID
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	s.db.roles[r.ID] = *r
	return nil
}

func (s *RoleStore) Save(_ context.Context, r *models.Role) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for id, other := range s.db.roles {
		if id != r.ID && other.RoleName == r.RoleName {
			return errRoleTaken
		}
	}
	r.UpdatedAt = time.Now()
	s.db.roles[r.ID] = *r
	return nil
}

func (s *RoleStore) DeleteByID(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.roles, id)
	return nil
}
