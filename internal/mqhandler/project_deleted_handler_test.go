package mqhandler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvalidator struct {
	owners []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, owners ...string) {
	f.owners = append(f.owners, owners...)
}

func TestProjectDeletedHandler(t *testing.T) {
	t.Run("invalidates every former member", func(t *testing.T) {
		inv := &fakeInvalidator{}
		h := NewProjectDeletedHandler(inv, zap.NewNop())

		payload := json.RawMessage(`{"project_id":"p1","members":["a@x.com","b@x.com"]}`)
		require.NoError(t, h.Handle(context.Background(), payload))
		assert.Equal(t, []string{"a@x.com", "b@x.com"}, inv.owners)
	})

	t.Run("malformed payload surfaces an error", func(t *testing.T) {
		inv := &fakeInvalidator{}
		h := NewProjectDeletedHandler(inv, zap.NewNop())

		err := h.Handle(context.Background(), json.RawMessage(`{`))
		assert.Error(t, err)
		assert.Empty(t, inv.owners)
	})
}
