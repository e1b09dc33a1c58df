package services

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/common"
)

// ProfileService shows reputations and records ratings after a swap.
type ProfileService interface {
	// Get returns userID's profile, or the caller's own when userID is empty.
	Get(ctx context.Context, userID string) (*api.Profile, error)
	Rate(ctx context.Context, req *api.RateRequest) (*api.RateResponse, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) Get(ctx context.Context, userID string) (*api.Profile, error) {
	return s.client.GetProfile(ctx, userID)
}

func (s *profileService) Rate(ctx context.Context, req *api.RateRequest) (*api.RateResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, common.NewValidationError("rating", "il voto deve essere tra 1 e 5")
	}
	return s.client.RateUser(ctx, req)
}
