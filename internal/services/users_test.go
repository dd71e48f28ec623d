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

func TestUserServiceIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, role := range []models.RoleName{models.RoleManager, models.RoleDeveloper, models.RoleContractor} {
		p := models.Principal{ID: 1, Username: "u", Role: role}

		_, err := f.users.List(ctx, p)
		assert.True(t, apperror.Is(err, apperror.KindAccessDenied), role)
		_, err = f.users.Create(ctx, p, services.CreateUserRequest{Username: "x", Email: "x@x.io", Password: "secret1", RoleID: 1})
		assert.True(t, apperror.Is(err, apperror.KindAccessDenied), role)
		err = f.users.Delete(ctx, p, 1)
		assert.True(t, apperror.Is(err, apperror.KindAccessDenied), role)
	}
	assert.Empty(t, f.auditRecords(t))
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "admin", models.RoleAdmin, "pw123456")

	user, err := f.users.Create(ctx, admin, services.CreateUserRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "hunter22",
		FullName: "Jane Doe",
		RoleID:   f.roleIDs[models.RoleDeveloper],
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDeveloper, user.Role.RoleName)
	assert.True(t, f.hasher.Matches("hunter22", user.PasswordHash))

	recs := f.auditRecords(t)
	require.Len(t, recs, 1)
	assert.Equal(t, models.EntityUser, recs[0].EntityType)
	assert.Contains(t, string(recs[0].DataSnapshot), "jane@example.com")
	assert.NotContains(t, string(recs[0].DataSnapshot), user.PasswordHash)

	_, err = f.users.Create(ctx, admin, services.CreateUserRequest{Username: "jane", Email: "other@example.com", Password: "x12345", RoleID: 1})
	assert.True(t, apperror.Is(err, apperror.KindDuplicateUsername))
	_, err = f.users.Create(ctx, admin, services.CreateUserRequest{Username: "janet", Email: "JANE@example.com", Password: "x12345", RoleID: 1})
	assert.True(t, apperror.Is(err, apperror.KindDuplicateEmail))
	_, err = f.users.Create(ctx, admin, services.CreateUserRequest{Username: "janet", Email: "janet@example.com", Password: "x12345", RoleID: 99})
	assert.True(t, apperror.Is(err, apperror.KindInvalidReference))

	assert.Len(t, f.auditRecords(t), 1)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "admin", models.RoleAdmin, "pw123456")
	target := f.addUser(t, "bob", models.RoleContractor, "oldpass1")
	f.addUser(t, "taken", models.RoleContractor, "pw123456")

	_, err := f.users.Update(ctx, admin, target.ID, services.UpdateUserRequest{Username: ptr("taken")})
	assert.True(t, apperror.Is(err, apperror.KindDuplicateUsername))

	updated, err := f.users.Update(ctx, admin, target.ID, services.UpdateUserRequest{
		Password: ptr("newpass1"),
		Skills:   ptr("go, sql"),
		RoleID:   ptr(f.roleIDs[models.RoleDeveloper]),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, "go, sql", updated.Skills)
	assert.Equal(t, models.RoleDeveloper, updated.Role.RoleName)

	_, err = f.auth.Login(ctx, services.LoginRequest{Identifier: "bob", Password: "newpass1"})
	require.NoError(t, err)

	_, err = f.users.Update(ctx, admin, 404, services.UpdateUserRequest{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteUserLeavesTaskReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.addUser(t, "admin", models.RoleAdmin, "pw123456")
	dev := f.addUser(t, "dev", models.RoleDeveloper, "pw123456")
	project := newProject(t, f)

	task, err := f.tasks.Create(ctx, admin, services.CreateTaskRequest{Title: "t", ProjectID: project.ID, AssignedUserID: &dev.ID})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, admin, dev.ID))

	got, err := f.tasks.Get(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.True(t, got.AssignedTo(dev.ID))

	_, err = f.users.GetByUsername(ctx, admin, "dev")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
