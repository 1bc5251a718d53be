package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"collabhub/pkg/metrics"
)

type TaskRepository interface {
	MarkDue(ctx context.Context) ([]string, error)
}

type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Sweeper periodically flips tasks past their due date to the due status and
// publishes a task.due event per task. "due" is driven by the clock, not by
// the workflow, so this runs server-side rather than in request handlers.
type Sweeper struct {
	taskRepo  TaskRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewSweeper(taskRepo TaskRepository, publisher Publisher, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Run executes a sweep immediately and then on every tick until the context
// is cancelled. Call in a goroutine.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.Sweep(ctx); err != nil {
		s.logger.Error("Initial due sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Due sweeper stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("Due sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep performs one pass.
func (s *Sweeper) Sweep(ctx context.Context) error {
	ids, err := s.taskRepo.MarkDue(ctx)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		s.logger.Debug("No tasks past due")
		return nil
	}

	for _, id := range ids {
		payload := map[string]any{
			"task_id": id,
		}
		if err := s.publisher.Publish("task.due", payload); err != nil {
			s.logger.Error("Failed to publish task.due event",
				zap.String("task_id", id),
				zap.Error(err),
			)
			continue
		}
		metrics.TasksMarkedDueCount.Inc()
	}

	s.logger.Info("Due sweep completed", zap.Int("due_count", len(ids)))
	return nil
}
