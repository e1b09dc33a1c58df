package profiles

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
	RefreshReputation(ctx context.Context, userID string) (float64, error)
}
