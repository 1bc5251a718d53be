package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

func testProject() *model.Project {
	return &model.Project{
		ID:      "p1",
		Name:    "Alpha",
		Owner:   "a@x.com",
		Members: []string{"a@x.com", "b@x.com"},
	}
}

func TestCanView(t *testing.T) {
	p := testProject()

	assert.True(t, CanView("a@x.com", p))
	assert.True(t, CanView("b@x.com", p))
	assert.False(t, CanView("c@x.com", p))
	assert.False(t, CanView("", p))
}

func TestCanManage(t *testing.T) {
	p := testProject()

	assert.True(t, CanManage("a@x.com", p))
	assert.False(t, CanManage("b@x.com", p), "members must not manage")
	assert.False(t, CanManage("c@x.com", p))
}

func TestAuthorize_HidesExistence(t *testing.T) {
	p := testProject()

	require.NoError(t, Authorize("b@x.com", p))

	// An outsider gets the same error a missing record would produce.
	err := Authorize("c@x.com", p)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	err = AuthorizeManage("b@x.com", p)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestValidateAssignees(t *testing.T) {
	p := testProject()

	tests := []struct {
		name      string
		assignees []string
		createdBy string
		wantErr   bool
	}{
		{
			name:      "all members",
			assignees: []string{"a@x.com", "b@x.com"},
			createdBy: "a@x.com",
		},
		{
			name:      "empty list",
			assignees: nil,
			createdBy: "a@x.com",
		},
		{
			name:      "non-member rejected",
			assignees: []string{"c@x.com"},
			createdBy: "a@x.com",
			wantErr:   true,
		},
		{
			name:      "creator allowed even when not a member",
			assignees: []string{"c@x.com"},
			createdBy: "c@x.com",
		},
		{
			name:      "mixed list rejected on the outsider",
			assignees: []string{"b@x.com", "c@x.com"},
			createdBy: "a@x.com",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignees(tt.assignees, p, tt.createdBy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNormalizeMembers(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		members []string
		want    []string
	}{
		{
			name:    "owner added when absent",
			owner:   "a@x.com",
			members: []string{"b@x.com"},
			want:    []string{"a@x.com", "b@x.com"},
		},
		{
			name:    "duplicates collapsed",
			owner:   "a@x.com",
			members: []string{"a@x.com", "b@x.com", "b@x.com"},
			want:    []string{"a@x.com", "b@x.com"},
		},
		{
			name:  "nil members still contains owner",
			owner: "a@x.com",
			want:  []string{"a@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMembers(tt.owner, tt.members))
		})
	}
}
