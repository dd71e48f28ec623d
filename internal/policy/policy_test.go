package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func principal(id uint, role models.RoleName) models.Principal {
	return models.Principal{ID: id, Username: "user", Role: role}
}

func TestTaskUpdateDeniedForNonDevelopers(t *testing.T) {
	for _, role := range []models.RoleName{models.RoleAdmin, models.RoleManager, models.RoleContractor} {
		t.Run(string(role), func(t *testing.T) {
			// even when the task is assigned to them
			err := CheckAccess(principal(7, role), OpUpdate, ResourceTask, Resource{AssignedUserID: uintPtr(7)})
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindAccessDenied))

			err = CheckAccess(principal(7, role), OpUpdate, ResourceTask, Resource{})
			assert.True(t, apperror.Is(err, apperror.KindAccessDenied))
		})
	}
}

func TestTaskUpdateDeveloperOwnership(t *testing.T) {
	dev := principal(7, models.RoleDeveloper)

	assert.NoError(t, CheckAccess(dev, OpUpdate, ResourceTask, Resource{AssignedUserID: uintPtr(7)}))

	err := CheckAccess(dev, OpUpdate, ResourceTask, Resource{AssignedUserID: uintPtr(9)})
	assert.True(t, apperror.Is(err, apperror.KindAccessDenied))

	err = CheckAccess(dev, OpUpdate, ResourceTask, Resource{})
	assert.True(t, apperror.Is(err, apperror.KindAccessDenied), "unassigned task")
}

func TestTaskOtherOperationsOpen(t *testing.T) {
	for _, role := range models.AllRoles() {
		for _, op := range []Operation{OpCreate, OpRead, OpDelete} {
			assert.NoError(t, CheckAccess(principal(1, role), op, ResourceTask, Resource{}), "%s %s", role, op)
		}
	}
}

func TestProjectRules(t *testing.T) {
	tests := []struct {
		role    models.RoleName
		op      Operation
		allowed bool
	}{
		{models.RoleAdmin, OpCreate, true},
		{models.RoleManager, OpUpdate, true},
		{models.RoleManager, OpDelete, true},
		{models.RoleDeveloper, OpCreate, false},
		{models.RoleContractor, OpDelete, false},
		{models.RoleDeveloper, OpRead, true},
		{models.RoleContractor, OpRead, true},
	}
	for _, tt := range tests {
		err := CheckAccess(principal(1, tt.role), tt.op, ResourceProject, Resource{})
		if tt.allowed {
			assert.NoError(t, err, "%s %s", tt.role, tt.op)
		} else {
			assert.True(t, apperror.Is(err, apperror.KindAccessDenied), "%s %s", tt.role, tt.op)
		}
	}
}

func TestUserRulesAdminOnly(t *testing.T) {
	for _, op := range []Operation{OpCreate, OpRead, OpUpdate, OpDelete} {
		assert.NoError(t, CheckAccess(principal(1, models.RoleAdmin), op, ResourceUser, Resource{}))
		for _, role := range []models.RoleName{models.RoleManager, models.RoleDeveloper, models.RoleContractor} {
			err := CheckAccess(principal(1, role), op, ResourceUser, Resource{})
			assert.True(t, apperror.Is(err, apperror.KindAccessDenied))
		}
	}
}

func TestRoleResourceUnrestricted(t *testing.T) {
	for _, role := range models.AllRoles() {
		assert.NoError(t, CheckAccess(principal(1, role), OpDelete, ResourceRole, Resource{}))
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	err := CheckAccess(principal(1, models.RoleName("GUEST")), OpRead, ResourceProject, Resource{})
	assert.True(t, apperror.Is(err, apperror.KindAccessDenied))
}

type taskMap map[uint]models.Task

func (m taskMap) FindByID(_ context.Context, id uint) (*models.Task, error) {
	t, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func TestCheckTaskUpdate(t *testing.T) {
	tasks := taskMap{3: {ID: 3, AssignedUserID: uintPtr(9)}, 4: {ID: 4, AssignedUserID: uintPtr(7)}}
	dev := principal(7, models.RoleDeveloper)

	_, err := CheckTaskUpdate(context.Background(), tasks, dev, 3)
	assert.True(t, apperror.Is(err, apperror.KindAccessDenied))

	task, err := CheckTaskUpdate(context.Background(), tasks, dev, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(4), task.ID)

	_, err = CheckTaskUpdate(context.Background(), tasks, dev, 99)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
