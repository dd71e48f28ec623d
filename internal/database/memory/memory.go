// Package memory keeps every store in process maps. It backs STORAGE=memory
// and the service and handler tests.
package memory

import (
	"sort"
	"sync"

	"project-tracker/internal/models"
)

// DB is shared by all stores so a project delete can cascade to its tasks.
type DB struct {
	mu sync.RWMutex

	projects map[uint]models.Project
	tasks    map[uint]models.Task
	users    map[uint]models.User
	roles    map[uint]models.Role
	audit    []models.AuditRecord

	nextProjectID uint
	nextTaskID    uint
	nextUserID    uint
	nextRoleID    uint
}

func New() *DB {
	return &DB{
		projects: make(map[uint]models.Project),
		tasks:    make(map[uint]models.Task),
		users:    make(map[uint]models.User),
		roles:    make(map[uint]models.Role),
	}
}

func (db *DB) Projects() *ProjectStore { return &ProjectStore{db: db} }
func (db *DB) Tasks() *TaskStore       { return &TaskStore{db: db} }
func (db *DB) Users() *UserStore       { return &UserStore{db: db} }
func (db *DB) Roles() *RoleStore       { return &RoleStore{db: db} }
func (db *DB) Audit() *AuditStore      { return &AuditStore{db: db} }

func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 || limit < 1 || offset >= len(items) {
		return []T{}
	}
	if limit > len(items)-offset {
		limit = len(items) - offset
	}
	return items[offset : offset+limit]
}
