package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/internal/policy"
)

type TaskRepository interface {
	Insert(ctx context.Context, t *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListForUser(ctx context.Context, email string) ([]model.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
}

type Service struct {
	taskRepo    TaskRepository
	projectRepo ProjectRepository
	logger      *zap.Logger
}

func NewService(taskRepo TaskRepository, projectRepo ProjectRepository, logger *zap.Logger) *Service {
	return &Service{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// List returns the requester's tasks (created or assigned), or a project's
// tasks when projectID is set and the requester may view that project.
func (s *Service) List(ctx context.Context, requester, projectID string) ([]model.Task, error) {
	if projectID == "" {
		return s.taskRepo.ListForUser(ctx, requester)
	}

	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(requester, p); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

// Get returns a task when the requester may view its parent project.
func (s *Service) Get(ctx context.Context, requester, id string) (*model.Task, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProject(ctx, requester, t.Project); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateFields are the caller-supplied attributes of a new task.
type CreateFields struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	DueDate     *time.Time
	AssignedTo  []string
	Project     string
	Subtasks    []string
	Attachments []string
}

// Create makes a task under a project the requester may view. Assignees
// outside the project member set are rejected, except the creator's own
// email. The sequential task number is allocated by the repository.
func (s *Service) Create(ctx context.Context, requester string, f CreateFields) (*model.Task, error) {
	if f.Title == "" {
		return nil, apperr.Validationf("task title is required")
	}
	if f.Project == "" {
		return nil, apperr.Validationf("parent project is required")
	}

	if f.Status == "" {
		f.Status = model.TaskStatusTodo
	}
	if f.Priority == "" {
		f.Priority = model.TaskPriorityMedium
	}
	if f.Category == "" {
		f.Category = "general"
	}
	if !model.ValidTaskStatus(f.Status) {
		return nil, apperr.Validationf("unknown task status %q", f.Status)
	}
	if !model.ValidTaskPriority(f.Priority) {
		return nil, apperr.Validationf("unknown task priority %q", f.Priority)
	}

	p, err := s.projectRepo.FindByID(ctx, f.Project)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(requester, p); err != nil {
		return nil, err
	}
	if err := policy.ValidateAssignees(f.AssignedTo, p, requester); err != nil {
		return nil, err
	}

	t := &model.Task{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
		Category:    f.Category,
		DueDate:     f.DueDate,
		CreatedBy:   requester,
		AssignedTo:  f.AssignedTo,
		Project:     f.Project,
		Subtasks:    f.Subtasks,
		Comments:    []model.Comment{},
		Attachments: f.Attachments,
	}
	if t.AssignedTo == nil {
		t.AssignedTo = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []string{}
	}
	if t.Attachments == nil {
		t.Attachments = []string{}
	}

	if err := s.taskRepo.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateFields are the mutable task attributes. Nil means "leave as is".
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *string
	DueDate     *time.Time
	ClearDue    bool
	AssignedTo  []string
	Subtasks    []string
	Comments    []model.Comment
	Attachments []string
}

// Update applies field changes to a task the requester may view. A changed
// assignee list is re-validated against the parent project's members.
func (s *Service) Update(ctx context.Context, requester, id string, f UpdateFields) (*model.Task, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.projectRepo.FindByID(ctx, t.Project)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(requester, p); err != nil {
		return nil, err
	}

	if f.Title != nil {
		if *f.Title == "" {
			return nil, apperr.Validationf("task title cannot be empty")
		}
		t.Title = *f.Title
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Status != nil {
		if !model.ValidTaskStatus(*f.Status) {
			return nil, apperr.Validationf("unknown task status %q", *f.Status)
		}
		t.Status = *f.Status
	}
	if f.Priority != nil {
		if !model.ValidTaskPriority(*f.Priority) {
			return nil, apperr.Validationf("unknown task priority %q", *f.Priority)
		}
		t.Priority = *f.Priority
	}
	if f.Category != nil {
		t.Category = *f.Category
	}
	if f.ClearDue {
		t.DueDate = nil
	} else if f.DueDate != nil {
		t.DueDate = f.DueDate
	}
	if f.AssignedTo != nil {
		if err := policy.ValidateAssignees(f.AssignedTo, p, t.CreatedBy); err != nil {
			return nil, err
		}
		t.AssignedTo = f.AssignedTo
	}
	if f.Subtasks != nil {
		t.Subtasks = f.Subtasks
	}
	if f.Comments != nil {
		t.Comments = f.Comments
	}
	if f.Attachments != nil {
		t.Attachments = f.Attachments
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task the requester may view.
func (s *Service) Delete(ctx context.Context, requester, id string) error {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeProject(ctx, requester, t.Project); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted",
		zap.String("id", id),
		zap.String("requester", requester),
	)
	return nil
}

func (s *Service) authorizeProject(ctx context.Context, requester, projectID string) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return policy.Authorize(requester, p)
}
