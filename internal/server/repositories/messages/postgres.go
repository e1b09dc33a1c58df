// Package messages provides the PostgreSQL-backed, append-only message log.
package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends m to its conversation and fills in ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Type == "" {
		m.Type = models.MessageText
	}

	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, message_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, m.ID, m.ConversationID, m.SenderID, m.Content, m.Type).
		Scan(&m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// ListByConversation returns all messages of a conversation, oldest first.
func (r *PostgresRepository) ListByConversation(ctx context.Context, conversationID string) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, message_type, read_at, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Type, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkRead stamps every unread message in the conversation that readerID
// did not send and returns how many were updated.
func (r *PostgresRepository) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	query := `UPDATE messages SET read_at = $1
		WHERE conversation_id = $2 AND sender_id <> $3 AND read_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, at, conversationID, readerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
