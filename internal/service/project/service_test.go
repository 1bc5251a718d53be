package project

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

type fakeProjectRepo struct {
	projects map[string]*model.Project
	cascades []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*model.Project{}}
}

func (r *fakeProjectRepo) Insert(ctx context.Context, p *model.Project) error {
	p.ID = fmt.Sprintf("p%d", len(r.projects)+1)
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByMember(ctx context.Context, email string) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range r.projects {
		if p.Owner == email || p.HasMember(email) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *model.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) DeleteCascade(ctx context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.projects, id)
	r.cascades = append(r.cascades, id)
	return nil
}

func newTestService() (*Service, *fakeProjectRepo) {
	repo := newFakeProjectRepo()
	return NewService(repo, zap.NewNop()), repo
}

func TestCreate_OwnerFoldedIntoMembers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, err := svc.Create(ctx, "Alpha", "", "a@x.com", []string{"b@x.com", "a@x.com"}, true)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", p.Owner)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, p.Members)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, "", "", "a@x.com", nil, true)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Create(ctx, "Alpha", "", "", nil, true)
	assert.True(t, apperr.IsValidation(err))
}

func TestGet_UnauthorizedReadsAsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, err := svc.Create(ctx, "Alpha", "", "a@x.com", []string{"b@x.com"}, true)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "b@x.com", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Get(ctx, "c@x.com", p.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.Get(ctx, "a@x.com", "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdate_OwnerSurvivesMemberRewrite(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, err := svc.Create(ctx, "Alpha", "", "a@x.com", []string{"b@x.com"}, true)
	require.NoError(t, err)

	// Attempt to drop the owner from the member list.
	updated, err := svc.Update(ctx, "a@x.com", p.ID, UpdateFields{
		Members: []string{"b@x.com"},
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Members, "a@x.com", "owner must stay a member")
}

func TestUpdate_NonOwnerReadsAsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	p, err := svc.Create(ctx, "Alpha", "", "a@x.com", []string{"b@x.com"}, true)
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, "b@x.com", p.ID, UpdateFields{Name: &name})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	p, err := svc.Create(ctx, "Alpha", "", "a@x.com", []string{"b@x.com"}, true)
	require.NoError(t, err)

	t.Run("non-owner reads as not found", func(t *testing.T) {
		err := svc.Delete(ctx, "b@x.com", p.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
		assert.Empty(t, repo.cascades)
	})

	t.Run("owner triggers the cascade", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "a@x.com", p.ID))
		assert.Equal(t, []string{p.ID}, repo.cascades)

		_, err := svc.Get(ctx, "a@x.com", p.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("second delete is a clean not found", func(t *testing.T) {
		err := svc.Delete(ctx, "a@x.com", p.ID)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
