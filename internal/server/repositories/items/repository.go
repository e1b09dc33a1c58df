package items

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	IncrementViews(ctx context.Context, id string) error
	ListActiveInBox(ctx context.Context, center geo.Point, box geo.Box, limit int) ([]*models.NearbyItem, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Item, error)
	UpdateStatus(ctx context.Context, id, userID string, status models.ItemStatus) error
	Delete(ctx context.Context, id, userID string) (*models.Item, error)
}
