package chat

import (
	"context"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/internal/policy"
)

type ChatRepository interface {
	Insert(ctx context.Context, m *model.ChatMessage) error
	ListByProject(ctx context.Context, projectID string) ([]model.ChatMessage, error)
}

type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
}

type Service struct {
	chatRepo    ChatRepository
	projectRepo ProjectRepository
	logger      *zap.Logger
}

func NewService(chatRepo ChatRepository, projectRepo ProjectRepository, logger *zap.Logger) *Service {
	return &Service{
		chatRepo:    chatRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// List returns a project's messages in creation order, for a requester who
// may view the project. The client polls this on an interval.
func (s *Service) List(ctx context.Context, requester, projectID string) ([]model.ChatMessage, error) {
	if err := s.authorize(ctx, requester, projectID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByProject(ctx, projectID)
}

// Post appends a message to a project's chat.
func (s *Service) Post(ctx context.Context, requester, projectID, message string) (*model.ChatMessage, error) {
	if message == "" {
		return nil, apperr.Validationf("message text is required")
	}
	if err := s.authorize(ctx, requester, projectID); err != nil {
		return nil, err
	}

	m := &model.ChatMessage{
		Project: projectID,
		Sender:  requester,
		Message: message,
	}
	if err := s.chatRepo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) authorize(ctx context.Context, requester, projectID string) error {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	return policy.Authorize(requester, p)
}
