package page

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

type fakePageRepo struct {
	pages  map[string]*model.Page
	nextID int
}

func (r *fakePageRepo) Insert(ctx context.Context, p *model.Page) error {
	r.nextID++
	p.ID = fmt.Sprintf("page%d", r.nextID)
	cp := *p
	r.pages[p.ID] = &cp
	return nil
}

func (r *fakePageRepo) FindByID(ctx context.Context, id string) (*model.Page, error) {
	p, ok := r.pages[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePageRepo) Update(ctx context.Context, p *model.Page) error {
	if _, ok := r.pages[p.ID]; !ok {
		return apperr.ErrNotFound
	}
	cp := *p
	r.pages[p.ID] = &cp
	return nil
}

func (r *fakePageRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.pages[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.pages, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[string]*model.Project
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func newTestService() *Service {
	projectRepo := &fakeProjectRepo{projects: map[string]*model.Project{
		"alpha": {
			ID:      "alpha",
			Owner:   "a@x.com",
			Members: []string{"a@x.com", "b@x.com"},
		},
	}}
	return NewService(&fakePageRepo{pages: map[string]*model.Page{}}, projectRepo, zap.NewNop())
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("member creates a page", func(t *testing.T) {
		svc := newTestService()

		p, err := svc.Create(ctx, "b@x.com", "Runbook", "# Steps", "alpha")
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", p.CreatedBy)
		assert.Equal(t, "alpha", p.Project)
	})

	t.Run("title and content required", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Create(ctx, "a@x.com", "", "body", "alpha")
		assert.True(t, apperr.IsValidation(err))

		_, err = svc.Create(ctx, "a@x.com", "Runbook", "", "alpha")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("outsider reads as not found", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Create(ctx, "c@x.com", "Runbook", "# Steps", "alpha")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestUpdateAndDelete_PolicyGated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, "a@x.com", "Runbook", "# Steps", "alpha")
	require.NoError(t, err)

	title := "Runbook v2"
	updated, err := svc.Update(ctx, "b@x.com", created.ID, &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "Runbook v2", updated.Title)
	assert.Equal(t, "# Steps", updated.Content)

	_, err = svc.Update(ctx, "c@x.com", created.ID, &title, nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	err = svc.Delete(ctx, "c@x.com", created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, "a@x.com", created.ID))

	_, err = svc.Get(ctx, "a@x.com", created.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
