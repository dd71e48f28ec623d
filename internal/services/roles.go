package services

import (
	"context"
	"fmt"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/policy"
)

// RoleService has no role gate beyond authentication.
// TODO: restrict role mutations to ADMIN once product confirms.
type RoleService struct {
	roles RoleStore
	users UserStore
	audit Auditor
}

func NewRoleService(roles RoleStore, users UserStore, auditor Auditor) *RoleService {
	return &RoleService{roles: roles, users: users, audit: auditor}
}

func (s *RoleService) allow(p models.Principal, op policy.Operation) error {
	return policy.CheckAccess(p, op, policy.ResourceRole, policy.Resource{})
}

func (s *RoleService) uniqueName(ctx context.Context, raw string) (models.RoleName, error) {
	name, ok := models.ParseRoleName(raw)
	if !ok {
		return "", apperror.Validation(fmt.Sprintf("Invalid role name: %s", raw))
	}
	taken, err := s.roles.ExistsByRoleName(ctx, name)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperror.Validation(fmt.Sprintf("Role already exists: %s", name))
	}
	return name, nil
}

func (s *RoleService) Create(ctx context.Context, p models.Principal, req RoleRequest) (*models.Role, error) {
	if err := s.allow(p, policy.OpCreate); err != nil {
		return nil, err
	}

	name, err := s.uniqueName(ctx, req.RoleName)
	if err != nil {
		return nil, err
	}
	role := &models.Role{RoleName: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}

	s.audit.Created(ctx, models.EntityRole, role.ID, p.Username, role)
	return role, nil
}

func (s *RoleService) Get(ctx context.Context, p models.Principal, id uint) (*models.Role, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *RoleService) load(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NotFound(models.EntityRole, id)
	}
	return role, nil
}

func (s *RoleService) GetByName(ctx context.Context, p models.Principal, raw string) (*models.Role, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}

	name, ok := models.ParseRoleName(raw)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Invalid role name: %s", raw))
	}
	role, err := s.roles.FindByRoleName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NotFoundBy(models.EntityRole, "name", name)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context, p models.Principal) ([]models.Role, error) {
	if err := s.allow(p, policy.OpRead); err != nil {
		return nil, err
	}
	return s.roles.FindAll(ctx)
}

func (s *RoleService) Update(ctx context.Context, p models.Principal, id uint, req RoleRequest) (*models.Role, error) {
	if err := s.allow(p, policy.OpUpdate); err != nil {
		return nil, err
	}

	role, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if name, ok := models.ParseRoleName(req.RoleName); !ok || name != role.RoleName {
		name, err := s.uniqueName(ctx, req.RoleName)
		if err != nil {
			return nil, err
		}
		role.RoleName = name
	}
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, err
	}

	s.audit.Updated(ctx, models.EntityRole, role.ID, p.Username, role)
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, p models.Principal, id uint) error {
	if err := s.allow(p, policy.OpDelete); err != nil {
		return err
	}

	role, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	// users.role_id is not nullable
	held, err := s.users.ExistsByRoleID(ctx, id)
	if err != nil {
		return err
	}
	if held {
		return apperror.Validation(fmt.Sprintf("Role is still assigned to users: %s", role.RoleName))
	}
	if err := s.roles.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.audit.Deleted(ctx, models.EntityRole, id, p.Username, role)
	return nil
}
