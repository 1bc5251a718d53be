package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
	"collabhub/pkg/metrics"
	"collabhub/pkg/outbox"
)

type ProjectRepository struct {
	db         *pgxpool.Pool
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, outboxRepo: outboxRepo, logger: logger}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	p.ID = uuid.New().String()
	start := time.Now()
	err := r.db.QueryRow(ctx, `
        INSERT INTO projects (id, name, description, owner, members, is_private)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `, p.ID, p.Name, p.Description, p.Owner, p.Members, p.IsPrivate).Scan(&p.CreatedAt, &p.UpdatedAt)
	metrics.RecordDBQueryDuration("insert", "projects", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to insert project",
			zap.String("owner", p.Owner),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Project inserted",
		zap.String("project_id", p.ID),
		zap.String("owner", p.Owner),
	)
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := r.db.QueryRow(ctx, `
        SELECT id, name, description, owner, members, is_private, created_at, updated_at
        FROM projects
        WHERE id = $1
    `, id).Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.Members, &p.IsPrivate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &p, nil
}

// ListByMember returns projects where the email is the owner or a member,
// most recently updated first.
func (r *ProjectRepository) ListByMember(ctx context.Context, email string) ([]model.Project, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, `
        SELECT id, name, description, owner, members, is_private, created_at, updated_at
        FROM projects
        WHERE owner = $1 OR $1 = ANY(members)
        ORDER BY updated_at DESC
    `, email)
	metrics.RecordDBQueryDuration("select", "projects", time.Since(start))
	if err != nil {
		r.logger.Error("Failed to query projects",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.Members, &p.IsPrivate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE projects
        SET name = $2, description = $3, members = $4, is_private = $5, updated_at = NOW()
        WHERE id = $1
    `, p.ID, p.Name, p.Description, p.Members, p.IsPrivate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteCascade removes a project and everything scoped to it, in one
// transaction: tasks, chat messages, pages, the project row, and a
// project.deleted outbox event. A crash can never leave orphans behind.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var tasksDeleted, messagesDeleted, pagesDeleted int64

	tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE project = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}
	tasksDeleted = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM chat_messages WHERE project = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project chat: %w", err)
	}
	messagesDeleted = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM pages WHERE project = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project pages: %w", err)
	}
	pagesDeleted = tag.RowsAffected()

	var members []string
	err = tx.QueryRow(ctx, `
        DELETE FROM projects WHERE id = $1
        RETURNING members
    `, id).Scan(&members)
	if err != nil {
		return handleNoRows(err)
	}

	err = outbox.InsertEventInTx(ctx, tx, r.outboxRepo, "project", id, "project.deleted", map[string]any{
		"project_id": id,
		"members":    members,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.IncrementCascadeDelete("failed")
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	metrics.IncrementCascadeDelete("success")
	r.logger.Info("Project cascade delete completed",
		zap.String("project_id", id),
		zap.Int64("tasks_deleted", tasksDeleted),
		zap.Int64("messages_deleted", messagesDeleted),
		zap.Int64("pages_deleted", pagesDeleted),
	)
	return nil
}
