// Package conversations provides the PostgreSQL-backed repository for chat
// threads between an item owner and a requester.
package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/common"
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

const columns = `id, COALESCE(item_id::text, ''), requester_id, owner_id, status, created_at, updated_at`

func scanConversation(row interface{ Scan(...any) error }, c *models.Conversation) error {
	return row.Scan(&c.ID, &c.ItemID, &c.RequesterID, &c.OwnerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}

// Find returns the conversation for the (item, requester, owner) triple or
// common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, itemID, requesterID, ownerID string) (*models.Conversation, error) {
	query := `SELECT ` + columns + ` FROM conversations
		WHERE item_id = $1 AND requester_id = $2 AND owner_id = $3`

	c := &models.Conversation{}
	if err := scanConversation(r.db.QueryRowContext(ctx, query, itemID, requesterID, ownerID), c); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Create inserts c. When a concurrent request already created the same
// triple nothing is inserted and common.ErrorNotFound is returned, so the
// caller can re-read the winner with Find.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Conversation) (*models.Conversation, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.ConversationActive
	}

	query := `
		INSERT INTO conversations (id, item_id, requester_id, owner_id, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_id, requester_id, owner_id) DO NOTHING
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.ItemID, c.RequesterID, c.OwnerID, c.Status).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// GetByID returns the conversation or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	query := `SELECT ` + columns + ` FROM conversations WHERE id = $1`

	c := &models.Conversation{}
	if err := scanConversation(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// ListForUser returns the active conversations userID takes part in, most
// recently updated first, with item title, last message and the number of
// messages userID has not read yet.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.ConversationRow, error) {
	query := `
		SELECT c.id, COALESCE(c.item_id::text, ''), c.requester_id, c.owner_id, c.status, c.created_at, c.updated_at,
			i.title, lm.content, lm.created_at,
			(SELECT count(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.read_at IS NULL)
		FROM conversations c
		LEFT JOIN items i ON i.id = c.item_id
		LEFT JOIN LATERAL (
			SELECT content, created_at FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) lm ON true
		WHERE (c.requester_id = $1 OR c.owner_id = $1) AND c.status = 'active'
		ORDER BY c.updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select conversations: %w", err)
	}
	defer rows.Close()

	var result []*models.ConversationRow
	for rows.Next() {
		var (
			row      models.ConversationRow
			title    sql.NullString
			lastText sql.NullString
			lastAt   sql.NullTime
		)
		if err := rows.Scan(
			&row.ID, &row.ItemID, &row.RequesterID, &row.OwnerID, &row.Status, &row.CreatedAt, &row.UpdatedAt,
			&title, &lastText, &lastAt, &row.UnreadCount,
		); err != nil {
			return nil, err
		}
		if title.Valid {
			row.ItemTitle = &title.String
		}
		if lastText.Valid {
			row.LastMessage = &lastText.String
		}
		if lastAt.Valid {
			row.LastMessageTime = &lastAt.Time
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
