package conversations

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/server/models"
)

type Repository interface {
	Find(ctx context.Context, itemID, requesterID, ownerID string) (*models.Conversation, error)
	Create(ctx context.Context, c *models.Conversation) (*models.Conversation, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]*models.ConversationRow, error)
}
