package memory

import (
	"context"
	"time"

	"project-tracker/internal/models"
)

type ProjectStore struct {
	db *DB
}

func (s *ProjectStore) FindByID(_ context.Context, id uint) (*models.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.projects[id]
	if !ok {
		return nil, nil
	}
	p = p.Detached()
	return &p, nil
}

func (s *ProjectStore) FindAll(_ context.Context) ([]models.Project, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]models.Project, 0, len(s.db.projects))
	for _, id := range sortedKeys(s.db.projects) {
		out = append(out, s.db.projects[id].Detached())
	}
	return out, nil
}

func (s *ProjectStore) FindPage(ctx context.Context, offset, limit int) ([]models.Project, int64, error) {
	all, _ := s.FindAll(ctx)
	return window(all, offset, limit), int64(len(all)), nil
}

func (s *ProjectStore) FindSummaryPage(ctx context.Context, offset, limit int) ([]models.ProjectSummary, int64, error) {
	page, total, _ := s.FindPage(ctx, offset, limit)
	out := make([]models.ProjectSummary, 0, len(page))
	for _, p := range page {
		out = append(out, models.ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status})
	}
	return out, total, nil
}

func (s *ProjectStore) ExistsByID(_ context.Context, id uint) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	_, ok := s.db.projects[id]
	return ok, nil
}

func (s *ProjectStore) Create(_ context.Context, p *models.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.nextProjectID++
	p.ID = s.db.nextProjectID
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	s.db.projects[p.ID] = p.Detached()
	return nil
}

func (s *ProjectStore) Save(_ context.Context, p *models.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p.UpdatedAt = time.Now()
	s.db.projects[p.ID] = p.Detached()
	return nil
}

func (s *ProjectStore) DeleteByID(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for tid, t := range s.db.tasks {
		if t.ProjectID == id {
			delete(s.db.tasks, tid)
		}
	}
	delete(s.db.projects, id)
	return nil
}
