package ratings

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Rating) (*models.Rating, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Rating, error)
}
