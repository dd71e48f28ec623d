package services

import (
	"context"
	"time"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/policy"
)

type TaskService struct {
	tasks    TaskStore
	projects ProjectStore
	users    UserStore
	audit    Auditor
	now      func() time.Time
}

func NewTaskService(tasks TaskStore, projects ProjectStore, users UserStore, auditor Auditor) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		audit:    auditor,
		now:      time.Now,
	}
}

func (s *TaskService) checkRefs(ctx context.Context, projectID uint, assignedUserID *uint) error {
	ok, err := s.projects.ExistsByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.InvalidReference("projectId")
	}

	if assignedUserID == nil {
		return nil
	}
	ok, err = s.users.ExistsByID(ctx, *assignedUserID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.InvalidReference("assignedUserId")
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, p models.Principal, req CreateTaskRequest) (*models.Task, error) {
	if err := policy.CheckAccess(p, policy.OpCreate, policy.ResourceTask, policy.Resource{}); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, req.ProjectID, req.AssignedUserID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		DueDate:        req.DueDate,
		ProjectID:      req.ProjectID,
		AssignedUserID: req.AssignedUserID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Created(ctx, models.EntityTask, task.ID, p.Username, task)
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, p models.Principal, id uint) (*models.Task, error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceTask, policy.Resource{}); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound(models.EntityTask, id)
	}
	return task, nil
}

func (s *TaskService) list(p models.Principal, find func() ([]models.Task, error)) ([]models.Task, error) {
	if err := policy.CheckAccess(p, policy.OpRead, policy.ResourceTask, policy.Resource{}); err != nil {
		return nil, err
	}
	return find()
}

func (s *TaskService) List(ctx context.Context, p models.Principal) ([]models.Task, error) {
	return s.list(p, func() ([]models.Task, error) { return s.tasks.FindAll(ctx) })
}

func (s *TaskService) ListByUser(ctx context.Context, p models.Principal, userID uint) ([]models.Task, error) {
	return s.list(p, func() ([]models.Task, error) { return s.tasks.FindByAssignedUserID(ctx, userID) })
}

func (s *TaskService) ListByProject(ctx context.Context, p models.Principal, projectID uint) ([]models.Task, error) {
	return s.list(p, func() ([]models.Task, error) { return s.tasks.FindByProjectID(ctx, projectID) })
}

func (s *TaskService) ListByStatus(ctx context.Context, p models.Principal, status bool) ([]models.Task, error) {
	return s.list(p, func() ([]models.Task, error) { return s.tasks.FindByStatus(ctx, status) })
}

// ListOverdue returns open tasks whose due date is before today.
func (s *TaskService) ListOverdue(ctx context.Context, p models.Principal) ([]models.Task, error) {
	today := models.DateOf(s.now()).Time
	return s.list(p, func() ([]models.Task, error) { return s.tasks.FindOverdue(ctx, today) })
}

// Update is only open to the developer the task is assigned to.
func (s *TaskService) Update(ctx context.Context, p models.Principal, id uint, req UpdateTaskRequest) (*models.Task, error) {
	task, err := policy.CheckTaskUpdate(ctx, s.tasks, p, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		d := *req.DueDate
		task.DueDate = &d
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.AssignedUserID != nil {
		uid := *req.AssignedUserID
		task.AssignedUserID = &uid
	}
	task.Status = req.Status

	if req.ProjectID != nil || req.AssignedUserID != nil {
		if err := s.checkRefs(ctx, task.ProjectID, req.AssignedUserID); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	s.audit.Updated(ctx, models.EntityTask, task.ID, p.Username, task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, p models.Principal, id uint) error {
	if err := policy.CheckAccess(p, policy.OpDelete, policy.ResourceTask, policy.Resource{}); err != nil {
		return err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return apperror.NotFound(models.EntityTask, id)
	}
	if err := s.tasks.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.audit.Deleted(ctx, models.EntityTask, id, p.Username, task)
	return nil
}
