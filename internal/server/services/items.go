package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/logging"
	sc "github.com/dmitrijs2005/localswap/internal/server/config"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/repomanager"
)

// nearbyScanLimit caps the rows read from the bounding-box prefilter,
// which returns the nearest candidates first.
const nearbyScanLimit = 500

// CreateItemInput is what a user submits from the add-item form.
type CreateItemInput struct {
	Title       string      `json:"title" validate:"required,max=100"`
	Description string      `json:"description" validate:"required,max=500"`
	Kind        models.Kind `json:"kind" validate:"required,oneof=object service"`
	Category    string      `json:"category" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,gte=0,lte=10000"`
	Lat         float64     `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64     `json:"lng" validate:"gte=-180,lte=180"`
	AddressHint string      `json:"address_hint" validate:"max=100"`
	ImageURLs   []string    `json:"image_urls" validate:"max=3"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
}

type imageRemover interface {
	Delete(ctx context.Context, url string) error
}

type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	names       DisplayNamer
	images      imageRemover
	config      *sc.Config
	log         logging.Logger
	now         func() time.Time
}

func NewItemService(db *sql.DB, repomanager repomanager.RepositoryManager, names DisplayNamer,
	images imageRemover, config *sc.Config, log logging.Logger) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: repomanager,
		names:       names,
		images:      images,
		config:      config,
		log:         log.With("module", "items"),
		now:         time.Now,
	}
}

// ValidateItem checks in against the listing rules and returns the first
// violation as a *common.ValidationError.
func (s *ItemService) ValidateItem(in *CreateItemInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.AddressHint = strings.TrimSpace(in.AddressHint)

	if err := validateStruct(in); err != nil {
		return err
	}

	if !models.HasOption(models.CategoriesForKind(in.Kind), in.Category) {
		return common.NewValidationError("category", "Categoria non valida per questo tipo di inserzione")
	}
	if !models.HasOption(models.TypesForKind(in.Kind), in.Type) {
		return common.NewValidationError("type", "Tipo non valido per questo tipo di inserzione")
	}

	switch {
	case in.Kind == models.KindObject && in.Type == "vendo" && (in.Price == nil || *in.Price <= 0):
		return common.NewValidationError("price", "Inserisci un prezzo valido per gli oggetti in vendita")
	case in.Kind == models.KindService && in.Price != nil && *in.Price <= 0:
		return common.NewValidationError("price", "Se specifichi un prezzo, deve essere maggiore di 0")
	}

	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return common.NewValidationError("expires_at", "La scadenza deve essere nel futuro")
	}
	return nil
}

// Create validates in and stores a new active listing owned by ownerID.
// Prices are kept only when positive; services never carry images.
func (s *ItemService) Create(ctx context.Context, ownerID string, in CreateItemInput) (*models.Item, error) {
	if err := s.ValidateItem(&in); err != nil {
		return nil, err
	}

	item := &models.Item{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Kind:        in.Kind,
		Category:    in.Category,
		Type:        in.Type,
		Currency:    common.Currency,
		Lat:         in.Lat,
		Lng:         in.Lng,
		AddressHint: in.AddressHint,
		Status:      models.StatusActive,
		ExpiresAt:   in.ExpiresAt,
	}
	if in.Price != nil && *in.Price > 0 {
		p := *in.Price
		item.Price = &p
	}
	if in.Kind == models.KindObject {
		item.ImageURLs = in.ImageURLs
	}

	created, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}

	s.log.Info(ctx, "item created", "item_id", created.ID, "owner", ownerID, "kind", created.Kind)
	return created, nil
}

// EffectiveRadius clamps a requested radius to the configured bounds.
// Non-positive radii mean the default.
func (s *ItemService) EffectiveRadius(radius int) int {
	if radius <= 0 {
		radius = s.config.DefaultRadiusMeters
	}
	if s.config.MaxRadiusMeters > 0 && radius > s.config.MaxRadiusMeters {
		radius = s.config.MaxRadiusMeters
	}
	return radius
}

// Nearby returns active items within radius meters of center, nearest
// first, with distance and owner display name filled in.
func (s *ItemService) Nearby(ctx context.Context, center geo.Point, radius int) ([]*models.NearbyItem, error) {
	if !center.Valid() {
		return nil, common.NewValidationError("location", "Posizione non valida")
	}
	radius = s.EffectiveRadius(radius)

	box := geo.BoundingBox(center, float64(radius))
	candidates, err := s.repomanager.Items(s.db).ListActiveInBox(ctx, center, box, nearbyScanLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing nearby items: %w", err)
	}

	result := make([]*models.NearbyItem, 0, len(candidates))
	for _, it := range candidates {
		d := geo.Distance(center, geo.Point{Lat: it.Lat, Lng: it.Lng})
		if d > float64(radius) {
			continue
		}
		it.DistanceMeters = d
		if it.OwnerName == "" {
			it.OwnerName = s.names.DisplayName(ctx, it.UserID)
		}
		result = append(result, it)
	}

	slices.SortStableFunc(result, func(a, b *models.NearbyItem) int {
		switch {
		case a.DistanceMeters < b.DistanceMeters:
			return -1
		case a.DistanceMeters > b.DistanceMeters:
			return 1
		}
		return 0
	})

	return result, nil
}

// ListByOwner returns the listings of ownerID, newest first.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Item, error) {
	items, err := s.repomanager.Items(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return items, nil
}

// Get returns an item and counts the view. A failed counter update is only
// logged.
func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.IncrementViews(ctx, id); err != nil {
		s.log.Warn(ctx, "views counter not updated", "item_id", id, "error", err)
	} else {
		item.ViewsCount++
	}
	return item, nil
}

// ownershipError tells a missing item (ErrorNotFound) apart from someone
// else's (ErrorForbidden) after an owner-scoped write matched no rows.
func (s *ItemService) ownershipError(ctx context.Context, id string) error {
	if _, err := s.repomanager.Items(s.db).GetByID(ctx, id); err == nil {
		return common.ErrorForbidden
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return common.ErrorNotFound
}

// UpdateStatus changes the status of an item owned by ownerID.
func (s *ItemService) UpdateStatus(ctx context.Context, ownerID, id string, status models.ItemStatus) error {
	if !status.Valid() {
		return common.NewValidationError("status", "Stato non valido")
	}

	err := s.repomanager.Items(s.db).UpdateStatus(ctx, id, ownerID, status)
	if errors.Is(err, common.ErrorNotFound) {
		return s.ownershipError(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("error updating item: %w", err)
	}

	s.log.Info(ctx, "item status changed", "item_id", id, "status", status)
	return nil
}

// Delete removes an item owned by ownerID together with its images.
// Image cleanup failures are logged and do not fail the call.
func (s *ItemService) Delete(ctx context.Context, ownerID, id string) error {
	item, err := s.repomanager.Items(s.db).Delete(ctx, id, ownerID)
	if errors.Is(err, common.ErrorNotFound) {
		return s.ownershipError(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("error deleting item: %w", err)
	}

	for _, url := range item.ImageURLs {
		if err := s.images.Delete(ctx, url); err != nil {
			s.log.Warn(ctx, "image not removed", "item_id", id, "url", url, "error", err)
		}
	}

	s.log.Info(ctx, "item deleted", "item_id", id)
	return nil
}
