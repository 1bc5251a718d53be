package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

type fakeChatRepo struct {
	messages []model.ChatMessage
	nextID   int
}

func (r *fakeChatRepo) Insert(ctx context.Context, m *model.ChatMessage) error {
	r.nextID++
	m.ID = fmt.Sprintf("msg%d", r.nextID)
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeChatRepo) ListByProject(ctx context.Context, projectID string) ([]model.ChatMessage, error) {
	out := []model.ChatMessage{}
	for _, m := range r.messages {
		if m.Project == projectID {
			out = append(out, m)
		}
	}
	return out, nil
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
	return NewService(&fakeChatRepo{}, projectRepo, zap.NewNop())
}

func TestPost(t *testing.T) {
	ctx := context.Background()

	t.Run("member posts and reads back in order", func(t *testing.T) {
		svc := newTestService()

		for _, text := range []string{"hello", "world"} {
			m, err := svc.Post(ctx, "b@x.com", "alpha", text)
			require.NoError(t, err)
			assert.Equal(t, "b@x.com", m.Sender)
		}

		msgs, err := svc.List(ctx, "a@x.com", "alpha")
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hello", msgs[0].Message)
		assert.Equal(t, "world", msgs[1].Message)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Post(ctx, "a@x.com", "alpha", "")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("outsider reads as not found", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Post(ctx, "c@x.com", "alpha", "hi")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))

		_, err = svc.List(ctx, "c@x.com", "alpha")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("unknown project reads as not found", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.List(ctx, "a@x.com", "nope")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
