package client

import (
	"context"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
)

// Client is the CLI's view of the LocalSwap backend.
type Client interface {
	Close() error
	SetToken(token string)
	Ping(ctx context.Context) error

	Catalog(ctx context.Context) (*api.CatalogResponse, error)
	Nearby(ctx context.Context, center geo.Point, radius int) (*api.ItemsResponse, error)
	GetItem(ctx context.Context, id string) (*api.Item, error)
	CreateItem(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error)
	MyItems(ctx context.Context) ([]*api.Item, error)
	UpdateItemStatus(ctx context.Context, id, status string) error
	DeleteItem(ctx context.Context, id string) error

	UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
	PresignImage(ctx context.Context, filename, contentType string) (*api.PresignResponse, error)

	ListConversations(ctx context.Context) ([]*api.Conversation, error)
	GetOrCreateConversation(ctx context.Context, itemID string) (string, error)
	GetMessages(ctx context.Context, conversationID string) ([]*api.Message, error)
	SendMessage(ctx context.Context, conversationID, content string) (*api.Message, error)
	MarkRead(ctx context.Context, conversationID string) (int64, error)
	// Watch calls fn for every new message of the conversation until ctx
	// is cancelled or the server ends the stream.
	Watch(ctx context.Context, conversationID string, fn func(*api.Message)) error

	GetProfile(ctx context.Context, userID string) (*api.Profile, error)
	RateUser(ctx context.Context, req *api.RateRequest) (*api.RateResponse, error)
}
