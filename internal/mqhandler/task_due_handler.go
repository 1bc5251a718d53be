package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// TaskDueHandler consumes task.due events emitted by the sweeper. The status
// flip already happened in the database; this side of the queue exists for
// follow-on processing (today: audit logging).
type TaskDueHandler struct {
	logger *zap.Logger
}

func NewTaskDueHandler(logger *zap.Logger) *TaskDueHandler {
	return &TaskDueHandler{logger: logger}
}

func (h *TaskDueHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	var p struct {
		TaskID string `json:"task_id"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal task.due payload", zap.Error(err))
		return err
	}

	h.logger.Info("Task passed its due date",
		zap.String("task_id", p.TaskID),
	)

	return nil
}
