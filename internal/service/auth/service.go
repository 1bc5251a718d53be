package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/pkg/util"
)

type UserRepository interface {
	CreateWithTeam(ctx context.Context, u *model.User, t *model.Team) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
}

type Service struct {
	userRepo  UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewService(userRepo UserRepository, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates a new user together with their default team. A collision
// is reported as an email conflict or a username conflict, whichever field
// matched the existing account.
func (s *Service) Register(ctx context.Context, username, email, password, avatar string) (*model.User, *model.Team, error) {
	if username == "" || email == "" || password == "" {
		return nil, nil, apperr.Validationf("username, email and password are required")
	}

	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		if existing.Email == email {
			return nil, nil, apperr.ErrEmailTaken
		}
		return nil, nil, apperr.ErrUsernameTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Avatar:       avatar,
	}
	t := &model.Team{
		Name:    fmt.Sprintf("%s's Team", username),
		Owner:   email,
		Members: []string{email},
	}

	if err := s.userRepo.CreateWithTeam(ctx, u, t); err != nil {
		return nil, nil, err
	}

	return u, t, nil
}

// Login checks credentials and returns a signed session token. Unknown email
// and wrong password produce the identical error so login attempts cannot
// probe which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(util.Claims{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
	}, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", u.ID))
	return token, u, nil
}

// Profile returns the account behind a session.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
