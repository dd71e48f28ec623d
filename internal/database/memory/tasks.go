package memory

import (
	"context"
	"time"

	"project-tracker/internal/models"
)

type TaskStore struct {
	db *DB
}

func (s *TaskStore) where(keep func(models.Task) bool) []models.Task {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []models.Task{}
	for _, id := range sortedKeys(s.db.tasks) {
		t := s.db.tasks[id]
		if keep(t) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

func copyTask(t models.Task) models.Task {
	if t.AssignedUserID != nil {
		uid := *t.AssignedUserID
		t.AssignedUserID = &uid
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

func (s *TaskStore) FindByID(_ context.Context, id uint) (*models.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	t, ok := s.db.tasks[id]
	if !ok {
		return nil, nil
	}
	t = copyTask(t)
	return &t, nil
}

func (s *TaskStore) FindAll(_ context.Context) ([]models.Task, error) {
	return s.where(func(models.Task) bool { return true }), nil
}

func (s *TaskStore) FindByAssignedUserID(_ context.Context, userID uint) ([]models.Task, error) {
	return s.where(func(t models.Task) bool { return t.AssignedTo(userID) }), nil
}

func (s *TaskStore) FindByProjectID(_ context.Context, projectID uint) ([]models.Task, error) {
	return s.where(func(t models.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *TaskStore) FindByStatus(_ context.Context, status bool) ([]models.Task, error) {
	return s.where(func(t models.Task) bool { return t.Status == status }), nil
}

func (s *TaskStore) FindOverdue(_ context.Context, day time.Time) ([]models.Task, error) {
	return s.where(func(t models.Task) bool {
		return !t.Status && t.DueDate != nil && t.DueDate.Before(day)
	}), nil
}

func (s *TaskStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.tasks[id]
	return ok, nil
}

func (s *TaskStore) Create(_ context.Context, t *models.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.nextTaskID++
	t.ID = s.db.nextTaskID
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	s.db.tasks[t.ID] = copyTask(*t)
	return nil
}

func (s *TaskStore) Save(_ context.Context, t *models.Task) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t.UpdatedAt = time.Now()
	s.db.tasks[t.ID] = copyTask(*t)
	return nil
}

func (s *TaskStore) DeleteByID(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.tasks, id)
	return nil
}
