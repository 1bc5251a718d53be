package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

type PageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPageRepository(db *pgxpool.Pool, logger *zap.Logger) *PageRepository {
	return &PageRepository{db: db, logger: logger}
}

func (r *PageRepository) Insert(ctx context.Context, p *model.Page) error {
	p.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
        INSERT INTO pages (id, title, content, project, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `, p.ID, p.Title, p.Content, p.Project, p.CreatedBy).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert page",
			zap.String("project", p.Project),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *PageRepository) FindByID(ctx context.Context, id string) (*model.Page, error) {
	var p model.Page
	err := r.db.QueryRow(ctx, `
        SELECT id, title, content, project, created_by, created_at, updated_at
        FROM pages
        WHERE id = $1
    `, id).Scan(&p.ID, &p.Title, &p.Content, &p.Project, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &p, nil
}

func (r *PageRepository) Update(ctx context.Context, p *model.Page) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE pages
        SET title = $2, content = $3, updated_at = NOW()
        WHERE id = $1
    `, p.ID, p.Title, p.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
