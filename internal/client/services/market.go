package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/client/client"
	"github.com/dmitrijs2005/localswap/internal/filex"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/netx"
)

// MarketService covers listings: discovery around a point, posting and
// managing one's own items.
type MarketService interface {
	Catalog(ctx context.Context) (*api.CatalogResponse, error)
	Nearby(ctx context.Context, center geo.Point, radius int) (*api.ItemsResponse, error)
	Show(ctx context.Context, id string) (*api.Item, error)
	Post(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error)
	Mine(ctx context.Context) ([]*api.Item, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// Upload sends the image at path and returns its public URL. With
	// presigned set the bytes go straight to object storage.
	Upload(ctx context.Context, path string, presigned bool) (string, error)
}

type marketService struct {
	client client.Client

	mu      sync.Mutex
	catalog *api.CatalogResponse
}

func NewMarketService(c client.Client) MarketService {
	return &marketService{client: c}
}

// uploadToPresignedURL is replaced in tests.
var uploadToPresignedURL = netx.UploadToPresignedURL

func (s *marketService) Catalog(ctx context.Context) (*api.CatalogResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return s.catalog, nil
	}
	c, err := s.client.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog = c
	return c, nil
}

func (s *marketService) Nearby(ctx context.Context, center geo.Point, radius int) (*api.ItemsResponse, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("invalid location %s", center)
	}
	return s.client.Nearby(ctx, center, radius)
}

func (s *marketService) Show(ctx context.Context, id string) (*api.Item, error) {
	return s.client.GetItem(ctx, id)
}

func (s *marketService) Post(ctx context.Context, req *api.CreateItemRequest) (*api.Item, error) {
	return s.client.CreateItem(ctx, req)
}

func (s *marketService) Mine(ctx context.Context) ([]*api.Item, error) {
	return s.client.MyItems(ctx)
}

func (s *marketService) SetStatus(ctx context.Context, id, status string) error {
	return s.client.UpdateItemStatus(ctx, id, status)
}

func (s *marketService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteItem(ctx, id)
}

func (s *marketService) Upload(ctx context.Context, path string, presigned bool) (string, error) {
	name, contentType, data, err := filex.ReadImage(path)
	if err != nil {
		return "", err
	}

	if !presigned {
		return s.client.UploadImage(ctx, name, contentType, data)
	}

	p, err := s.client.PresignImage(ctx, name, contentType)
	if err != nil {
		return "", err
	}
	if err := uploadToPresignedURL(ctx, p.UploadURL, contentType, data); err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return p.PublicURL, nil
}
