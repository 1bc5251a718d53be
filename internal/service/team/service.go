package team

import (
	"context"

	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/internal/policy"
)

type TeamRepository interface {
	Insert(ctx context.Context, t *model.Team) error
	FindByID(ctx context.Context, id string) (*model.Team, error)
	FindByOwner(ctx context.Context, owner string) (*model.Team, error)
	Update(ctx context.Context, t *model.Team) error
	AddMemberReciprocal(ctx context.Context, teamID, email, addedBy string) error
}

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TeamCache interface {
	Get(ctx context.Context, owner string) *model.Team
	Set(ctx context.Context, t *model.Team)
	Invalidate(ctx context.Context, owners ...string)
}

type Service struct {
	teamRepo TeamRepository
	userRepo UserRepository
	cache    TeamCache
	logger   *zap.Logger
}

func NewService(teamRepo TeamRepository, userRepo UserRepository, cache TeamCache, logger *zap.Logger) *Service {
	return &Service{
		teamRepo: teamRepo,
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// GetByOwner returns the team owned by an email, through the cache.
func (s *Service) GetByOwner(ctx context.Context, owner string) (*model.Team, error) {
	if t := s.cache.Get(ctx, owner); t != nil {
		return t, nil
	}

	t, err := s.teamRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, t)
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Team, error) {
	return s.teamRepo.FindByID(ctx, id)
}

// Create makes a new team. The owner is always folded into the member list.
func (s *Service) Create(ctx context.Context, name, owner string, members []string) (*model.Team, error) {
	if name == "" || owner == "" {
		return nil, apperr.Validationf("team name and owner are required")
	}

	t := &model.Team{
		Name:    name,
		Owner:   owner,
		Members: policy.NormalizeMembers(owner, members),
	}
	if err := s.teamRepo.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, owner)
	return t, nil
}

// Update renames a team and/or replaces its member list. The owner cannot be
// removed from the members.
func (s *Service) Update(ctx context.Context, id string, name *string, members []string) (*model.Team, error) {
	t, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperr.Validationf("team name cannot be empty")
		}
		t.Name = *name
	}
	if members != nil {
		t.Members = policy.NormalizeMembers(t.Owner, members)
	}

	if err := s.teamRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, t.Owner)
	return t, nil
}

// AddMember adds a user to a team after checking that both exist and the
// user is not already a member. When the invitee owns a team, the inviter is
// added there reciprocally in the same transaction.
func (s *Service) AddMember(ctx context.Context, teamID, email, addedBy string) (*model.Team, error) {
	if email == "" {
		return nil, apperr.Validationf("member email is required")
	}

	t, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	if t.HasMember(email) {
		return nil, apperr.ErrAlreadyMember
	}

	if err := s.teamRepo.AddMemberReciprocal(ctx, teamID, email, addedBy); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, t.Owner, email)
	s.logger.Info("Member added to team",
		zap.String("team_id", teamID),
		zap.String("member", email),
		zap.String("added_by", addedBy),
	)

	return s.teamRepo.FindByID(ctx, teamID)
}
