package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type TeamCacheInvalidator interface {
	Invalidate(ctx context.Context, owners ...string)
}

// ProjectDeletedHandler consumes project.deleted events from the cascade
// delete and drops cached team entries for everyone who was a member, so a
// stale membership view cannot outlive the project.
type ProjectDeletedHandler struct {
	teamCache TeamCacheInvalidator
	logger    *zap.Logger
}

func NewProjectDeletedHandler(teamCache TeamCacheInvalidator, logger *zap.Logger) *ProjectDeletedHandler {
	return &ProjectDeletedHandler{teamCache: teamCache, logger: logger}
}

func (h *ProjectDeletedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p struct {
		ProjectID string   `json:"project_id"`
		Members   []string `json:"members"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal project.deleted payload", zap.Error(err))
		return err
	}

	h.teamCache.Invalidate(ctx, p.Members...)

	h.logger.Info("Handled project.deleted event",
		zap.String("project_id", p.ProjectID),
		zap.Int("members_invalidated", len(p.Members)),
	)

	return nil
}
