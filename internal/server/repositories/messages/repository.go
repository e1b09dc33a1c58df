package messages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/localswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*models.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error)
}
