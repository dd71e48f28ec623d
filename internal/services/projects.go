package services

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/policy"
)

const DefaultProjectCacheTTL = 10 * time.Minute

type ProjectService struct {
	projects ProjectStore
	audit    Auditor
	cache    *cache.Cache
}

func NewProjectService(projects ProjectStore, auditor Auditor, cacheTTL time.Duration) *ProjectService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultProjectCacheTTL
	}
	return &ProjectService{
		projects: projects,
		audit:    auditor,
		cache:    cache.New(cacheTTL, 2*cacheTTL),
	}
}

func projectKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *ProjectService) Create(ctx context.Context, p models.Principal, req CreateProjectRequest) (*models.Project, error) {
	if err := policy.CheckAccess(p, policy.OpCreate, policy.ResourceProject, policy.Resource{}); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      req.Status,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.audit.Created(ctx, models.EntityProject, project.ID, p.Username, project)
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, p models.Principal, id uint) (*models.Project, error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceProject, policy.Resource{}); err != nil {
		return nil, err
	}

	// cached values never leave the cache without being detached
	if cached, ok := s.cache.Get(projectKey(id)); ok {
		project := cached.(models.Project).Detached()
		return &project, nil
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(projectKey(id), project.Detached())
	return project, nil
}

// load bypasses the cache; mutations always work on the stored row.
func (s *ProjectService) load(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NotFound(models.EntityProject, id)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, p models.Principal) ([]models.Project, error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceProject, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.projects.FindAll(ctx)
}

func (s *ProjectService) ListPage(ctx context.Context, p models.Principal, req PageRequest) (Page[models.Project], error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceProject, policy.Resource{}); err != nil {
		return Page[models.Project]{}, err
	}

	req = req.normalize()
	content, total, err := s.projects.FindPage(ctx, req.Offset(), req.Size)
	if err != nil {
		return Page[models.Project]{}, err
	}
	return NewPage(content, req, total), nil
}

func (s *ProjectService) ListSummaries(ctx context.Context, p models.Principal, req PageRequest) (Page[models.ProjectSummary], error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceProject, policy.Resource{}); err != nil {
		return Page[models.ProjectSummary]{}, err
	}

	req = req.normalize()
	content, total, err := s.projects.FindSummaryPage(ctx, req.Offset(), req.Size)
	if err != nil {
		return Page[models.ProjectSummary]{}, err
	}
	return NewPage(content, req, total), nil
}

func (s *ProjectService) Update(ctx context.Context, p models.Principal, id uint, req UpdateProjectRequest) (*models.Project, error) {
	if err := policy.CheckAccess(p, policy.OpUpdate, policy.ResourceProject, policy.Resource{}); err != nil {
		return nil, err
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(project)
	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	s.cache.Delete(projectKey(id))

	s.audit.Updated(ctx, models.EntityProject, project.ID, p.Username, project)
	return project, nil
}

// Delete removes the project together with its tasks.
func (s *ProjectService) Delete(ctx context.Context, p models.Principal, id uint) error {
	if err := policy.CheckAccess(p, policy.OpDelete, policy.ResourceProject, policy.Resource{}); err != nil {
		return err
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(projectKey(id))

	s.audit.Deleted(ctx, models.EntityProject, id, p.Username, project)
	return nil
}
