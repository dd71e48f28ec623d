package services

import (
	"context"
	"strings"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/policy"
	"project-tracker/internal/security"
)

// UserService is the administrator's account management. Deleting a user
// leaves tasks that reference it untouched.
type UserService struct {
	users  UserStore
	roles  RoleStore
	hasher security.Hasher
	audit  Auditor
}

func NewUserService(users UserStore, roles RoleStore, hasher security.Hasher, auditor Auditor) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher, audit: auditor}
}

func (s *UserService) allow(p models.Principal, op policy.Operation) error {
	return policy.CheckAccess(p, op, policy.ResourceUser, policy.Resource{})
}

func (s *UserService) role(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.InvalidReference("roleId")
	}
	return role, nil
}

func (s *UserService) Create(ctx context.Context, p models.Principal, req CreateUserRequest) (*models.User, error) {
	if err := s.allow(p, policy.OpCreate); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.DuplicateUsername()
	}
	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.DuplicateEmail()
	}

	role, err := s.role(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Encode(req.Password)
	if err != nil {
		return nil, apperror.Internal("could not hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		FullName:     req.FullName,
		Skills:       req.Skills,
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role

	s.audit.Created(ctx, models.EntityUser, user.ID, p.Username, user)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, p models.Principal, id uint) (*models.User, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *UserService) load(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(models.EntityUser, id)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, p models.Principal, username string) (*models.User, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundBy(models.EntityUser, "username", username)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, p models.Principal) ([]models.User, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx)
}

func (s *UserService) Update(ctx context.Context, p models.Principal, id uint, req UpdateUserRequest) (*models.User, error) {
	if err := s.allow(p, policy.OpUpdate); err != nil {
		return nil, err
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.DuplicateUsername()
		}
		user.Username = *req.Username
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		taken, err := s.users.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.DuplicateEmail()
		}
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hash, err := s.hasher.Encode(*req.Password)
		if err != nil {
			return nil, apperror.Internal("could not hash password", err)
		}
		user.PasswordHash = hash
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Skills != nil {
		user.Skills = *req.Skills
	}
	if req.RoleID != nil {
		role, err := s.role(ctx, *req.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = *role
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Updated(ctx, models.EntityUser, user.ID, p.Username, user)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p models.Principal, id uint) error {
	if err := s.allow(p, policy.OpDelete); err != nil {
		return err
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.audit.Deleted(ctx, models.EntityUser, id, p.Username, user)
	return nil
}
