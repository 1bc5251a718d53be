// Package policy is the access-and-consistency rule set for projects, tasks
// and teams. Handlers and services call these functions instead of encoding
// membership checks inline, so the existence-hiding behavior (unauthorized
// lookups read as not-found) lives in exactly one place.
package policy

import (
	"slices"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

// CanView reports whether the user may read a project and everything scoped
// to it (tasks, chat, pages). Owners and members may view.
func CanView(email string, p *model.Project) bool {
	return email == p.Owner || p.HasMember(email)
}

// CanManage reports whether the user may mutate or delete a project. Only
// the owner may manage.
func CanManage(email string, p *model.Project) bool {
	return email == p.Owner
}

// Authorize returns ErrNotFound when the user may not view the project.
// Callers surface it exactly like a missing record.
func Authorize(email string, p *model.Project) error {
	if !CanView(email, p) {
		return apperr.ErrNotFound
	}
	return nil
}

// AuthorizeManage returns ErrNotFound when the user may not mutate the
// project. A member who is not the owner learns nothing beyond "not found".
func AuthorizeManage(email string, p *model.Project) error {
	if !CanManage(email, p) {
		return apperr.ErrNotFound
	}
	return nil
}

// ValidateAssignees rejects any assignee outside the project member set. The
// creator's own email is always allowed, member or not.
func ValidateAssignees(assignees []string, p *model.Project, createdBy string) error {
	for _, email := range assignees {
		if email == createdBy {
			continue
		}
		if !p.HasMember(email) {
			return apperr.Validationf("assignee %s is not a member of project %s", email, p.Name)
		}
	}
	return nil
}

// NormalizeMembers dedupes a member list and guarantees the owner is in it.
// Relative order of the remaining entries is preserved.
func NormalizeMembers(owner string, members []string) []string {
	out := []string{owner}
	for _, m := range members {
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}
