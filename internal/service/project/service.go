package project

import (
	"context"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/internal/policy"
)

type ProjectRepository interface {
	Insert(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	ListByMember(ctx context.Context, email string) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	DeleteCascade(ctx context.Context, id string) error
}

type Service struct {
	projectRepo ProjectRepository
	logger      *zap.Logger
}

func NewService(projectRepo ProjectRepository, logger *zap.Logger) *Service {
	return &Service{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// List returns every project the email owns or belongs to.
func (s *Service) List(ctx context.Context, email string) ([]model.Project, error) {
	return s.projectRepo.ListByMember(ctx, email)
}

// Get returns a project the requester may view; anything else reads as not
// found.
func (s *Service) Get(ctx context.Context, requester, id string) (*model.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(requester, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Create makes a new project owned by the requester. The owner is deduped
// into the member list.
func (s *Service) Create(ctx context.Context, name, description, owner string, members []string, isPrivate bool) (*model.Project, error) {
	if name == "" {
		return nil, apperr.Validationf("project name is required")
	}
	if owner == "" {
		return nil, apperr.Validationf("owner email is required")
	}

	p := &model.Project{
		Name:        name,
		Description: description,
		Owner:       owner,
		Members:     policy.NormalizeMembers(owner, members),
		IsPrivate:   isPrivate,
	}
	if err := s.projectRepo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateFields are the mutable project attributes. Nil means "leave as is".
type UpdateFields struct {
	Name        *string
	Description *string
	Members     []string
	IsPrivate   *bool
}

// Update applies field changes to a project the requester owns. The owner is
// re-folded into the member list so the membership invariant survives any
// update.
func (s *Service) Update(ctx context.Context, requester, id string, f UpdateFields) (*model.Project, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeManage(requester, p); err != nil {
		return nil, err
	}

	if f.Name != nil {
		if *f.Name == "" {
			return nil, apperr.Validationf("project name cannot be empty")
		}
		p.Name = *f.Name
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Members != nil {
		p.Members = policy.NormalizeMembers(p.Owner, f.Members)
	}
	if f.IsPrivate != nil {
		p.IsPrivate = *f.IsPrivate
	}

	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project the requester owns, cascading to its tasks, chat
// messages and pages in one transaction.
func (s *Service) Delete(ctx context.Context, requester, id string) error {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.AuthorizeManage(requester, p); err != nil {
		return err
	}

	if err := s.projectRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", id),
		zap.String("owner", p.Owner),
	)
	return nil
}
