package team

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

type fakeTeamRepo struct {
	teams  map[string]*model.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]*model.Team{}}
}

func (r *fakeTeamRepo) Insert(ctx context.Context, t *model.Team) error {
	r.nextID++
	t.ID = fmt.Sprintf("team%d", r.nextID)
	cp := *t
	r.teams[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, id string) (*model.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) FindByOwner(ctx context.Context, owner string) (*model.Team, error) {
	for _, t := range r.teams {
		if t.Owner == owner {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *fakeTeamRepo) Update(ctx context.Context, t *model.Team) error {
	if _, ok := r.teams[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *t
	r.teams[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) AddMemberReciprocal(ctx context.Context, teamID, email, addedBy string) error {
	t, ok := r.teams[teamID]
	if !ok {
		return apperr.ErrNotFound
	}
	if !slices.Contains(t.Members, email) {
		t.Members = append(t.Members, email)
	}
	for _, other := range r.teams {
		if other.Owner == email && !slices.Contains(other.Members, addedBy) {
			other.Members = append(other.Members, addedBy)
		}
	}
	return nil
}

type fakeUserRepo struct {
	emails map[string]bool
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.emails[email], nil
}

type fakeTeamCache struct {
	byOwner      map[string]*model.Team
	invalidated  []string
	hits, misses int
}

func newFakeTeamCache() *fakeTeamCache {
	return &fakeTeamCache{byOwner: map[string]*model.Team{}}
}

func (c *fakeTeamCache) Get(ctx context.Context, owner string) *model.Team {
	if t, ok := c.byOwner[owner]; ok {
		c.hits++
		return t
	}
	c.misses++
	return nil
}

func (c *fakeTeamCache) Set(ctx context.Context, t *model.Team) {
	c.byOwner[t.Owner] = t
}

func (c *fakeTeamCache) Invalidate(ctx context.Context, owners ...string) {
	for _, o := range owners {
		delete(c.byOwner, o)
		c.invalidated = append(c.invalidated, o)
	}
}

func newTestService(knownEmails ...string) (*Service, *fakeTeamRepo, *fakeTeamCache) {
	teamRepo := newFakeTeamRepo()
	userRepo := &fakeUserRepo{emails: map[string]bool{}}
	for _, e := range knownEmails {
		userRepo.emails[e] = true
	}
	cache := newFakeTeamCache()
	return NewService(teamRepo, userRepo, cache, zap.NewNop()), teamRepo, cache
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner folded into members", func(t *testing.T) {
		svc, _, _ := newTestService()

		created, err := svc.Create(ctx, "Alpha", "a@x.com", []string{"b@x.com", "b@x.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a@x.com", "b@x.com"}, created.Members)
	})

	t.Run("name and owner required", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "", "a@x.com", nil)
		assert.True(t, apperr.IsValidation(err))

		_, err = svc.Create(ctx, "Alpha", "", nil)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestGetByOwner_Cache(t *testing.T) {
	ctx := context.Background()
	svc, _, cache := newTestService()

	_, err := svc.Create(ctx, "Alpha", "a@x.com", nil)
	require.NoError(t, err)

	first, err := svc.GetByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.misses)

	second, err := svc.GetByOwner(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.ID, second.ID)
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown team reads as not found", func(t *testing.T) {
		svc, _, _ := newTestService("b@x.com")

		_, err := svc.AddMember(ctx, "nope", "b@x.com", "a@x.com")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("unregistered email reads as not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		created, err := svc.Create(ctx, "Alpha", "a@x.com", nil)
		require.NoError(t, err)

		_, err = svc.AddMember(ctx, created.ID, "ghost@x.com", "a@x.com")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("duplicate member rejected", func(t *testing.T) {
		svc, _, _ := newTestService("b@x.com")
		created, err := svc.Create(ctx, "Alpha", "a@x.com", []string{"b@x.com"})
		require.NoError(t, err)

		_, err = svc.AddMember(ctx, created.ID, "b@x.com", "a@x.com")
		assert.True(t, errors.Is(err, apperr.ErrAlreadyMember))
	})

	t.Run("adds member and reciprocates into invitee's team", func(t *testing.T) {
		svc, repo, cache := newTestService("b@x.com")
		alphas, err := svc.Create(ctx, "Alpha", "a@x.com", nil)
		require.NoError(t, err)
		betas, err := svc.Create(ctx, "Beta", "b@x.com", nil)
		require.NoError(t, err)

		updated, err := svc.AddMember(ctx, alphas.ID, "b@x.com", "a@x.com")
		require.NoError(t, err)
		assert.Contains(t, updated.Members, "b@x.com")

		reciprocal, err := repo.FindByID(ctx, betas.ID)
		require.NoError(t, err)
		assert.Contains(t, reciprocal.Members, "a@x.com")

		assert.Contains(t, cache.invalidated, "a@x.com")
		assert.Contains(t, cache.invalidated, "b@x.com")
	})
}

func TestUpdate_OwnerCannotBeRemoved(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "Alpha", "a@x.com", []string{"b@x.com"})
	require.NoError(t, err)

	name := "Alpha v2"
	updated, err := svc.Update(ctx, created.ID, &name, []string{"c@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alpha v2", updated.Name)
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, updated.Members)
}
