package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"collabhub/internal/model"
)

type ChatRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChatRepository(db *pgxpool.Pool, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{db: db, logger: logger}
}

func (r *ChatRepository) Insert(ctx context.Context, m *model.ChatMessage) error {
	m.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
        INSERT INTO chat_messages (id, project, sender, message)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `, m.ID, m.Project, m.Sender, m.Message).Scan(&m.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert chat message",
			zap.String("project", m.Project),
			zap.String("sender", m.Sender),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ListByProject returns a project's messages oldest first, the order the
// polling client renders them in.
func (r *ChatRepository) ListByProject(ctx context.Context, projectID string) ([]model.ChatMessage, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, project, sender, message, created_at
        FROM chat_messages
        WHERE project = $1
        ORDER BY created_at ASC
    `, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.Project, &m.Sender, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
