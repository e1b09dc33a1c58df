// Package transport holds what the HTTP and gRPC front ends share: the
// service contracts they call, the caller identity carried in the context,
// model-to-wire conversion and the mapping of domain errors to status codes.
package transport

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/realtime"
	"github.com/dmitrijs2005/localswap/internal/server/services"
)

type ItemService interface {
	Create(ctx context.Context, ownerID string, in services.CreateItemInput) (*models.Item, error)
	EffectiveRadius(radius int) int
	Nearby(ctx context.Context, center geo.Point, radius int) ([]*models.NearbyItem, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Item, error)
	Get(ctx context.Context, id string) (*models.Item, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status models.ItemStatus) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ImageService interface {
	Upload(ctx context.Context, ownerID, filename, contentType string, data []byte) (string, error)
	PresignUpload(ctx context.Context, filename, contentType string) (*services.PresignedUpload, error)
	Delete(ctx context.Context, url string) error
}

type ChatService interface {
	ListConversations(ctx context.Context, userID string) ([]*models.ConversationSummary, error)
	GetOrCreateConversation(ctx context.Context, itemID, requesterID string) (string, error)
	GetMessages(ctx context.Context, conversationID, userID string) ([]*models.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) (int64, error)
	Subscribe(ctx context.Context, conversationID, userID string) (*realtime.Subscription, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, in services.ProfileInput) (*models.Profile, error)
	DisplayName(ctx context.Context, userID string) string
}

type RatingService interface {
	Rate(ctx context.Context, raterID string, in services.RatingInput) (*models.Rating, float64, error)
}

// Services bundles the back ends a transport dispatches to.
type Services struct {
	Items    ItemService
	Images   ImageService
	Chat     ChatService
	Profiles ProfileService
	Ratings  RatingService
}
