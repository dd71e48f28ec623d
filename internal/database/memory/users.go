package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"project-tracker/internal/models"
)

var (
	errUsernameTaken = errors.New("duplicate key value violates unique constraint \"users_username\"")
	errEmailTaken    = errors.New("duplicate key value violates unique constraint \"users_email\"")
)

type UserStore struct {
	db *DB
}

// caller holds the lock
func (s *UserStore) withRole(u models.User) models.User {
	u.Role = s.db.roles[u.RoleID]
	return u
}

func (s *UserStore) findOne(keep func(models.User) bool) *models.User {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, id := range sortedKeys(s.db.users) {
		u := s.db.users[id]
		if keep(u) {
			u = s.withRole(u)
			return &u
		}
	}
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	return s.findOne(func(u models.User) bool { return u.ID == id }), nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.findOne(func(u models.User) bool { return u.Username == username }), nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findOne(func(u models.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (s *UserStore) FindAll(_ context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]models.User, 0, len(s.db.users))
	for _, id := range sortedKeys(s.db.users) {
		out = append(out, s.withRole(s.db.users[id]))
	}
	return out, nil
}

func (s *UserStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.users[id]
	return ok, nil
}

func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := s.FindByUsername(ctx, username)
	return u != nil, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := s.FindByEmail(ctx, email)
	return u != nil, nil
}

func (s *UserStore) ExistsByRoleID(_ context.Context, roleID uint) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.RoleID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// caller holds the lock
func (s *UserStore) checkUnique(u *models.User) error {
	for id, other := range s.db.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username {
			return errUsernameTaken
		}
		if strings.EqualFold(other.Email, u.Email) {
			return errEmailTaken
		}
	}
	return nil
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.checkUnique(u); err != nil {
		return err
	}
	s.db.nextUserID++
	u.ID = s.db.nextUserID
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Role = s.db.roles[u.RoleID]
	s.db.users[u.ID] = *u
	return nil
}

func (s *UserStore) Save(_ context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.checkUnique(u); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()
	u.Role = s.db.roles[u.RoleID]
	s.db.users[u.ID] = *u
	return nil
}

// DeleteByID leaves tasks assigned to the user untouched.
func (s *UserStore) DeleteByID(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.users, id)
	return nil
}
