package database

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"project-tracker/internal/database/memory"
	"project-tracker/internal/models"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
)

var (
	_ services.ProjectStore = (*ProjectStore)(nil)
	_ services.TaskStore    = (*TaskStore)(nil)
	_ services.UserStore    = (*UserStore)(nil)
	_ services.RoleStore    = (*RoleStore)(nil)
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	log, hook := test.NewNullLogger()

	for i := 0; i < 2; i++ {
		require.NoError(t, Seed(ctx, db.Roles(), db.Users(), hasher, "root@tracker.local", "pw", log))
	}

	roles, err := db.Roles().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(models.AllRoles()))

	users, err := db.Users().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role.RoleName)
	assert.True(t, hasher.Matches("pw", users[0].PasswordHash))

	created := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "created default admin user" {
			created++
		}
	}
	assert.Equal(t, 1, created)
}
