package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-tracker/internal/models"
	"project-tracker/internal/security"
)

// openSQLite runs the gorm stores against an in-memory SQLite database with
// the same migrations as Postgres.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, db.AutoMigrate(&models.AuditRecord{}))
	return db
}

func TestProjectStoreCascadeDelete(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	projects, tasks := NewProjectStore(db), NewTaskStore(db)

	keep := &models.Project{Name: "keep"}
	drop := &models.Project{Name: "drop"}
	require.NoError(t, projects.Create(ctx, keep))
	require.NoError(t, projects.Create(ctx, drop))
	for _, task := range []*models.Task{
		{Title: "a", ProjectID: drop.ID},
		{Title: "b", ProjectID: drop.ID},
		{Title: "c", ProjectID: keep.ID},
	} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	require.NoError(t, projects.DeleteByID(ctx, drop.ID))

	gone, err := projects.FindByID(ctx, drop.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	exists, err := projects.ExistsByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	left, err := tasks.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "c", left[0].Title)
}

func TestProjectStorePages(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	projects := NewProjectStore(db)

	deadline := models.NewDate(2025, time.July, 4)
	for _, p := range []*models.Project{
		{Name: "one"},
		{Name: "two", Status: true, Deadline: &deadline},
		{Name: "three"},
	} {
		require.NoError(t, projects.Create(ctx, p))
	}

	page, total, err := projects.FindPage(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "two", page[0].Name)
	require.NotNil(t, page[0].Deadline)
	assert.Equal(t, deadline.String(), page[0].Deadline.String())

	summaries, total, err := projects.FindSummaryPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []models.ProjectSummary{
		{ID: 2, Name: "two", Status: true},
		{ID: 3, Name: "three", Status: false},
	}, summaries)

	empty, _, err := projects.FindSummaryPage(ctx, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskStoreQueries(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	projects, tasks := NewProjectStore(db), NewTaskStore(db)

	project := &models.Project{Name: "p"}
	require.NoError(t, projects.Create(ctx, project))

	today := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	past := models.DateOf(today.AddDate(0, 0, -1))
	due := models.DateOf(today)
	future := models.DateOf(today.AddDate(0, 0, 1))
	assignee := uint(9)

	for _, task := range []*models.Task{
		{Title: "late", ProjectID: project.ID, DueDate: &past, AssignedUserID: &assignee},
		{Title: "done", ProjectID: project.ID, DueDate: &past, Status: true},
		{Title: "today", ProjectID: project.ID, DueDate: &due},
		{Title: "soon", ProjectID: project.ID, DueDate: &future, AssignedUserID: &assignee},
		{Title: "undated", ProjectID: project.ID},
	} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	overdue, err := tasks.FindOverdue(ctx, today)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Title)
	require.NotNil(t, overdue[0].DueDate)
	assert.Equal(t, past.String(), overdue[0].DueDate.String())

	mine, err := tasks.FindByAssignedUserID(ctx, assignee)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	open, err := tasks.FindByStatus(ctx, false)
	require.NoError(t, err)
	assert.Len(t, open, 4)

	inProject, err := tasks.FindByProjectID(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, inProject, 5)
}

func TestUserStoreLookups(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	roles, users := NewRoleStore(db), NewUserStore(db)

	dev := &models.Role{RoleName: models.RoleDeveloper}
	mgr := &models.Role{RoleName: models.RoleManager}
	require.NoError(t, roles.Create(ctx, dev))
	require.NoError(t, roles.Create(ctx, mgr))

	ann := &models.User{Username: "ann", Email: "Ann@Example.com", PasswordHash: "x", RoleID: dev.ID}
	require.NoError(t, users.Create(ctx, ann))
	assert.Error(t, users.Create(ctx, &models.User{Username: "ann", Email: "other@example.com", PasswordHash: "x", RoleID: dev.ID}))

	found, err := users.FindByEmail(ctx, "ann@example.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ann.ID, found.ID)
	assert.Equal(t, models.RoleDeveloper, found.Role.RoleName)

	taken, err := users.ExistsByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	missing, err := users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)

	held, err := users.ExistsByRoleID(ctx, dev.ID)
	require.NoError(t, err)
	assert.True(t, held)
	held, err = users.ExistsByRoleID(ctx, mgr.ID)
	require.NoError(t, err)
	assert.False(t, held)

	found.RoleID = mgr.ID
	require.NoError(t, users.Save(ctx, found))
	moved, err := users.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, moved.Role.RoleName)

	byName, err := roles.FindByRoleName(ctx, models.RoleManager)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, mgr.ID, byName.ID)
}

func TestAuditStoreFinders(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	store := NewAuditStore(db)

	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	records := []models.AuditRecord{
		{EntityType: models.EntityProject, EntityID: 1, Action: models.AuditCreate, Username: "mgr"},
		{EntityType: models.EntityTask, EntityID: 1, Action: models.AuditCreate, Username: "mgr"},
		{EntityType: models.EntityProject, EntityID: 1, Action: models.AuditUpdate, Username: "admin"},
		{EntityType: models.EntityProject, EntityID: 1, Action: models.AuditDelete, Username: "mgr"},
	}
	for i := range records {
		rec := records[i]
		rec.ID = uuid.New()
		rec.Timestamp = base.Add(time.Duration(i) * time.Minute)
		rec.DataSnapshot = datatypes.JSON(`{"id":1}`)
		require.NoError(t, store.Insert(ctx, &rec))
	}

	actions := func(recs []models.AuditRecord) []models.AuditAction {
		out := make([]models.AuditAction, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.Action)
		}
		return out
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, models.AuditDelete, all[0].Action)
	assert.JSONEq(t, `{"id":1}`, string(all[0].DataSnapshot))

	projects, err := store.FindByEntityType(ctx, models.EntityProject)
	require.NoError(t, err)
	assert.Equal(t, []models.AuditAction{models.AuditDelete, models.AuditUpdate, models.AuditCreate}, actions(projects))

	byMgr, err := store.FindByUsername(ctx, "mgr")
	require.NoError(t, err)
	assert.Len(t, byMgr, 3)

	both, err := store.FindByEntityTypeAndUsername(ctx, models.EntityProject, "mgr")
	require.NoError(t, err)
	assert.Equal(t, []models.AuditAction{models.AuditDelete, models.AuditCreate}, actions(both))

	none, err := store.FindByEntityTypeAndUsername(ctx, models.EntityRole, "mgr")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSeedOnGormStores(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	roles, users := NewRoleStore(db), NewUserStore(db)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	log, _ := test.NewNullLogger()

	for i := 0; i < 2; i++ {
		require.NoError(t, Seed(ctx, roles, users, hasher, "root@tracker.local", "pw", log))
	}

	all, err := roles.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(models.AllRoles()))

	admin, err := users.FindByEmail(ctx, "ROOT@tracker.local")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, models.RoleAdmin, admin.Role.RoleName)
}
