package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/pkg/metrics"
)

const taskColumns = `
    id, task_id, title, description, status, priority, category, due_date,
    created_by, assigned_to, project, subtasks, comments, attachments,
    created_at, updated_at`

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

type taskScanner interface {
	Scan(dest ...any) error
}

func scanTask(row taskScanner, t *model.Task) error {
	return row.Scan(
		&t.ID, &t.TaskID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.Category, &t.DueDate, &t.CreatedBy, &t.AssignedTo, &t.Project,
		&t.Subtasks, &t.Comments, &t.Attachments, &t.CreatedAt, &t.UpdatedAt,
	)
}

// Insert creates a task and allocates the next human-facing task number.
// The number is computed inside the INSERT and guarded by a unique
// constraint; a concurrent collision is retried once with a fresh number.
func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	t.ID = uuid.New().String()
	start := time.Now()

	query := `
        INSERT INTO tasks (id, task_id, title, description, status, priority, category,
                           due_date, created_by, assigned_to, project, subtasks, comments, attachments)
        VALUES ($1, (SELECT COALESCE(MAX(task_id), 0) + 1 FROM tasks),
                $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING task_id, created_at, updated_at
    `
	args := []any{
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.Category,
		t.DueDate, t.CreatedBy, t.AssignedTo, t.Project, t.Subtasks,
		t.Comments, t.Attachments,
	}

	err := r.db.QueryRow(ctx, query, args...).Scan(&t.TaskID, &t.CreatedAt, &t.UpdatedAt)
	if isUniqueViolation(err, "tasks_task_id_key") {
		r.logger.Warn("Task number collision, retrying", zap.String("id", t.ID))
		err = r.db.QueryRow(ctx, query, args...).Scan(&t.TaskID, &t.CreatedAt, &t.UpdatedAt)
	}
	metrics.RecordDBQueryDuration("insert", "tasks", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.String("created_by", t.CreatedBy),
			zap.String("project", t.Project),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Task inserted",
		zap.String("id", t.ID),
		zap.Int("task_id", t.TaskID),
		zap.String("project", t.Project),
	)
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	err := scanTask(r.db.QueryRow(ctx, `
        SELECT `+taskColumns+`
        FROM tasks
        WHERE id = $1
    `, id), &t)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &t, nil
}

// ListForUser returns tasks the email created or is assigned to, newest first.
func (r *TaskRepository) ListForUser(ctx context.Context, email string) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+taskColumns+`
        FROM tasks
        WHERE created_by = $1 OR $1 = ANY(assigned_to)
        ORDER BY created_at DESC
    `, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListByProject returns all tasks under a project, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+taskColumns+`
        FROM tasks
        WHERE project = $1
        ORDER BY created_at DESC
    `, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tasks
        SET title = $2, description = $3, status = $4, priority = $5, category = $6,
            due_date = $7, assigned_to = $8, project = $9, subtasks = $10,
            comments = $11, attachments = $12, updated_at = NOW()
        WHERE id = $1
    `, t.ID, t.Title, t.Description, t.Status, t.Priority, t.Category,
		t.DueDate, t.AssignedTo, t.Project, t.Subtasks, t.Comments, t.Attachments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// MarkDue flips tasks whose due date has passed to the due status and
// returns their identifiers. Completed tasks and tasks already due are
// left alone.
func (r *TaskRepository) MarkDue(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE tasks
        SET status = 'due', updated_at = NOW()
        WHERE due_date IS NOT NULL
        AND due_date < NOW()
        AND status NOT IN ('complete', 'due')
        RETURNING id
    `)
	if err != nil {
		r.logger.Error("Failed to mark due tasks", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
