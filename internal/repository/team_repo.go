package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/model"
)

type TeamRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTeamRepository(db *pgxpool.Pool, logger *zap.Logger) *TeamRepository {
	return &TeamRepository{db: db, logger: logger}
}

func (r *TeamRepository) Insert(ctx context.Context, t *model.Team) error {
	t.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
        INSERT INTO teams (id, name, owner, members)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `, t.ID, t.Name, t.Owner, t.Members).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert team",
			zap.String("owner", t.Owner),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Team inserted", zap.String("team_id", t.ID))
	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	var t model.Team
	err := r.db.QueryRow(ctx, `
        SELECT id, name, owner, members, created_at, updated_at
        FROM teams
        WHERE id = $1
    `, id).Scan(&t.ID, &t.Name, &t.Owner, &t.Members, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &t, nil
}

// FindByOwner returns the team owned by the given email.
func (r *TeamRepository) FindByOwner(ctx context.Context, owner string) (*model.Team, error) {
	var t model.Team
	err := r.db.QueryRow(ctx, `
        SELECT id, name, owner, members, created_at, updated_at
        FROM teams
        WHERE owner = $1
    `, owner).Scan(&t.ID, &t.Name, &t.Owner, &t.Members, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &t, nil
}

func (r *TeamRepository) Update(ctx context.Context, t *model.Team) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE teams
        SET name = $2, members = $3, updated_at = NOW()
        WHERE id = $1
    `, t.ID, t.Name, t.Members)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AddMemberReciprocal adds the invitee to the team and, when the invitee
// owns a team of their own, adds the inviter there as well. Both writes
// happen in one transaction.
func (r *TeamRepository) AddMemberReciprocal(ctx context.Context, teamID, email, addedBy string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE teams
        SET members = array_append(members, $2), updated_at = NOW()
        WHERE id = $1 AND NOT ($2 = ANY(members))
    `, teamID, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// The guard in the WHERE clause makes a duplicate look like a
		// missing row; the service checks for duplicates beforehand.
		return apperr.ErrNotFound
	}

	if addedBy != "" {
		_, err = tx.Exec(ctx, `
            UPDATE teams
            SET members = array_append(members, $2), updated_at = NOW()
            WHERE owner = $1 AND NOT ($2 = ANY(members))
        `, email, addedBy)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	r.logger.Info("Team member added",
		zap.String("team_id", teamID),
		zap.String("member", email),
	)
	return nil
}
