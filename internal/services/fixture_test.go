package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"project-tracker/internal/audit"
	"project-tracker/internal/database/memory"
	"project-tracker/internal/models"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
)

type fixture struct {
	db       *memory.DB
	recorder *audit.Recorder
	hasher   security.Hasher
	tokens   *security.JWTCodec

	projects *services.ProjectService
	tasks    *services.TaskService
	users    *services.UserService
	roles    *services.RoleService
	auth     *services.AuthService

	roleIDs map[models.RoleName]uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.New()
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f := &fixture{
		db:       db,
		recorder: audit.NewRecorder(db.Audit(), log),
		hasher:   security.NewBcryptHasher(bcrypt.MinCost),
		tokens:   security.NewJWTCodec("test-secret", time.Hour),
		roleIDs:  map[models.RoleName]uint{},
	}

	ctx := context.Background()
	for _, name := range models.AllRoles() {
		role := &models.Role{RoleName: name}
		require.NoError(t, db.Roles().Create(ctx, role))
		f.roleIDs[name] = role.ID
	}

	f.projects = services.NewProjectService(db.Projects(), f.recorder, time.Minute)
	f.tasks = services.NewTaskService(db.Tasks(), db.Projects(), db.Users(), f.recorder)
	f.users = services.NewUserService(db.Users(), db.Roles(), f.hasher, f.recorder)
	f.roles = services.NewRoleService(db.Roles(), db.Users(), f.recorder)

	auth, err := services.NewAuthService(db.Users(), db.Roles(), f.hasher, f.tokens, f.recorder)
	require.NoError(t, err)
	f.auth = auth
	return f
}

// addUser stores a user directly, without an audit record.
func (f *fixture) addUser(t *testing.T, username string, role models.RoleName, password string) models.Principal {
	t.Helper()

	hash, err := f.hasher.Encode(password)
	require.NoError(t, err)
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		RoleID:       f.roleIDs[role],
	}
	require.NoError(t, f.db.Users().Create(context.Background(), u))
	return models.Principal{ID: u.ID, Username: u.Username, Email: u.Email, Role: role}
}

func (f *fixture) auditRecords(t *testing.T) []models.AuditRecord {
	t.Helper()

	recs, err := f.recorder.Query(context.Background(), audit.Filter{})
	require.NoError(t, err)
	return recs
}

func ptr[T any](v T) *T {
	return &v
}
