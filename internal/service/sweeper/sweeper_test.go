package sweeper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTaskRepo struct {
	batches [][]string
	err     error
}

func (r *fakeTaskRepo) MarkDue(ctx context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.batches) == 0 {
		return nil, nil
	}
	batch := r.batches[0]
	r.batches = r.batches[1:]
	return batch, nil
}

type fakePublisher struct {
	published []string
	failOn    string
}

func (p *fakePublisher) Publish(routingKey string, payload any) error {
	m, ok := payload.(map[string]any)
	if !ok {
		return errors.New("unexpected payload shape")
	}
	id := m["task_id"].(string)
	if id == p.failOn {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, routingKey+":"+id)
	return nil
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes one event per due task", func(t *testing.T) {
		repo := &fakeTaskRepo{batches: [][]string{{"t1", "t2"}}}
		pub := &fakePublisher{}
		s := NewSweeper(repo, pub, zap.NewNop())

		require.NoError(t, s.Sweep(ctx))
		assert.Equal(t, []string{"task.due:t1", "task.due:t2"}, pub.published)

		// Second sweep finds nothing; nothing is re-published.
		require.NoError(t, s.Sweep(ctx))
		assert.Len(t, pub.published, 2)
	})

	t.Run("publish failure skips the task but not the batch", func(t *testing.T) {
		repo := &fakeTaskRepo{batches: [][]string{{"t1", "t2", "t3"}}}
		pub := &fakePublisher{failOn: "t2"}
		s := NewSweeper(repo, pub, zap.NewNop())

		require.NoError(t, s.Sweep(ctx))
		assert.Equal(t, []string{"task.due:t1", "task.due:t3"}, pub.published)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		repo := &fakeTaskRepo{err: errors.New("db down")}
		s := NewSweeper(repo, &fakePublisher{}, zap.NewNop())

		assert.Error(t, s.Sweep(ctx))
	})
}
