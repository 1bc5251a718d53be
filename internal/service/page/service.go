package page

import (
	"context"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/internal/policy"
)

type PageRepository interface {
	Insert(ctx context.Context, p *model.Page) error
	FindByID(ctx context.Context, id string) (*model.Page, error)
	Update(ctx context.Context, p *model.Page) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
}

type Service struct {
	pageRepo    PageRepository
	projectRepo ProjectRepository
	logger      *zap.Logger
}

func NewService(pageRepo PageRepository, projectRepo ProjectRepository, logger *zap.Logger) *Service {
	return &Service{
		pageRepo:    pageRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create makes a documentation page under a project the requester may view.
func (s *Service) Create(ctx context.Context, requester, title, content, projectID string) (*model.Page, error) {
	if title == "" || content == "" {
		return nil, apperr.Validationf("page title and content are required")
	}
	if projectID == "" {
		return nil, apperr.Validationf("parent project is required")
	}
	if err := s.authorize(ctx, requester, projectID); err != nil {
		return nil, err
	}

	p := &model.Page{
		Title:     title,
		Content:   content,
		Project:   projectID,
		CreatedBy: requester,
	}
	if err := s.pageRepo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, requester, id string) (*model.Page, error) {
	p, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, requester, p.Project); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, requester, id string, title, content *string) (*model.Page, error) {
	p, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, requester, p.Project); err != nil {
		return nil, err
	}

	if title != nil {
		if *title == "" {
			return nil, apperr.Validationf("page title cannot be empty")
		}
		p.Title = *title
	}
	if content != nil {
		p.Content = *content
	}

	if err := s.pageRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, requester, id string) error {
	p, err := s.pageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, requester, p.Project); err != nil {
		return err
	}
	return s.pageRepo.Delete(ctx, id)
}

func (s *Service) authorize(ctx context.Context, requester, projectID string) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return policy.Authorize(requester, p)
}
