package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/model"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// CreateWithTeam inserts a new user and their default team in one
// transaction. Registration either produces both records or neither.
func (r *UserRepository) CreateWithTeam(ctx context.Context, u *model.User, t *model.Team) error {
	u.ID = uuid.New().String()
	t.ID = uuid.New().String()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO users (id, username, email, password_hash, avatar)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `, u.ID, u.Username, u.Email, u.PasswordHash, u.Avatar).Scan(&u.CreatedAt)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO teams (id, name, owner, members)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at
    `, t.ID, t.Name, t.Owner, t.Members).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	r.logger.Info("User registered with default team",
		zap.String("user_id", u.ID),
		zap.String("team_id", t.ID),
	)
	return nil
}

// FindByEmail returns a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, `
        SELECT id, username, email, password_hash, avatar, created_at
        FROM users
        WHERE email = $1
    `, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &u, nil
}

// FindByID returns a user by primary identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, `
        SELECT id, username, email, password_hash, avatar, created_at
        FROM users
        WHERE id = $1
    `, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		return nil, handleNoRows(err)
	}
	return &u, nil
}

// FindByEmailOrUsername returns the first user colliding on either field.
// Used at registration to tell an email collision from a username collision.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, `
        SELECT id, username, email, password_hash, avatar, created_at
        FROM users
        WHERE email = $1 OR username = $2
        LIMIT 1
    `, email, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail reports whether a user with this email is registered.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
    `, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
