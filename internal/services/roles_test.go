package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/services"
)

func TestRoleLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contractor := models.Principal{ID: 3, Username: "temp", Role: models.RoleContractor}

	_, err := f.roles.Create(ctx, contractor, services.RoleRequest{RoleName: "manager"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, err = f.roles.Create(ctx, contractor, services.RoleRequest{RoleName: "OWNER"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	role, err := f.roles.GetByName(ctx, contractor, "developer")
	require.NoError(t, err)
	assert.Equal(t, f.roleIDs[models.RoleDeveloper], role.ID)

	require.NoError(t, f.roles.Delete(ctx, contractor, role.ID))
	_, err = f.roles.Get(ctx, contractor, role.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	created, err := f.roles.Create(ctx, contractor, services.RoleRequest{RoleName: " Developer "})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDeveloper, created.RoleName)

	same, err := f.roles.Update(ctx, contractor, created.ID, services.RoleRequest{RoleName: "DEVELOPER"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, same.ID)

	_, err = f.roles.Update(ctx, contractor, created.ID, services.RoleRequest{RoleName: "ADMIN"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	actions := map[models.AuditAction]int{}
	for _, rec := range f.auditRecords(t) {
		assert.Equal(t, models.EntityRole, rec.EntityType)
		actions[rec.Action]++
	}
	assert.Equal(t, map[models.AuditAction]int{models.AuditDelete: 1, models.AuditCreate: 1, models.AuditUpdate: 1}, actions)
}

func TestDeleteRoleStillAssigned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "root", models.RoleAdmin, "pw123456")
	f.addUser(t, "dev", models.RoleDeveloper, "pw123456")

	err := f.roles.Delete(ctx, admin, f.roleIDs[models.RoleDeveloper])
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "DEVELOPER")

	role, err := f.roles.Get(ctx, admin, f.roleIDs[models.RoleDeveloper])
	require.NoError(t, err)
	assert.Equal(t, models.RoleDeveloper, role.RoleName)
	assert.Empty(t, f.auditRecords(t))

	res, err := f.auth.Login(ctx, services.LoginRequest{Identifier: "dev", Password: "pw123456"})
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, f.roles.Delete(ctx, admin, f.roleIDs[models.RoleManager]))
}
