// Package items provides the PostgreSQL-backed repository for listings.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/geo"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresRepository implements item storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
	// types scans text[] columns through database/sql.
	types *pgtype.Map
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, types: pgtype.NewMap()}
}

const itemColumns = `i.id, i.user_id, i.title, i.description, i.kind, i.category, i.type, i.price, i.currency,
	i.lat, i.lng, COALESCE(i.address_hint, ''), i.image_urls, i.status, i.expires_at, i.views_count,
	i.created_at, i.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanItem(row rowScanner, item *models.Item, extra ...any) error {
	var price sql.NullFloat64
	var expires sql.NullTime

	dest := []any{
		&item.ID, &item.UserID, &item.Title, &item.Description, &item.Kind, &item.Category, &item.Type,
		&price, &item.Currency, &item.Lat, &item.Lng, &item.AddressHint,
		r.types.SQLScanner(&item.ImageURLs), &item.Status, &expires, &item.ViewsCount,
		&item.CreatedAt, &item.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	if price.Valid {
		p := price.Float64
		item.Price = &p
	}
	if expires.Valid {
		t := expires.Time
		item.ExpiresAt = &t
	}
	return nil
}

// Create inserts item, assigning a new UUID when ID is empty, and returns it
// with the server-side timestamps filled in.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.ImageURLs == nil {
		item.ImageURLs = []string{}
	}

	query := `
		INSERT INTO items (id, user_id, title, description, kind, category, type, price, currency,
			lat, lng, address_hint, image_urls, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14, $15)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.Title, item.Description, string(item.Kind), item.Category, item.Type,
		item.Price, item.Currency, item.Lat, item.Lng, item.AddressHint, item.ImageURLs,
		string(item.Status), item.ExpiresAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// GetByID returns the item or common.ErrorNotFound. An id that is not a
// uuid cannot match any row and is reported the same way.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.id = $1`

	item := &models.Item{}
	if err := r.scanItem(r.db.QueryRowContext(ctx, query, id), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// IncrementViews bumps the views counter of an item.
func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE items SET views_count = views_count + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListActiveInBox returns up to limit active, unexpired items whose location
// falls inside box, joined with the owner's profile name. Rows come nearest
// to center first by an equirectangular estimate, so the limit drops the
// farthest candidates. Callers apply the exact distance filter.
func (r *PostgresRepository) ListActiveInBox(ctx context.Context, center geo.Point, box geo.Box, limit int) ([]*models.NearbyItem, error) {
	query := `SELECT ` + itemColumns + `, COALESCE(NULLIF(p.full_name, ''), p.username, '')
		FROM items i
		LEFT JOIN profiles p ON p.id = i.user_id
		WHERE i.status = 'active'
			AND (i.expires_at IS NULL OR i.expires_at > now())
			AND i.lat BETWEEN $1 AND $2
			AND i.lng BETWEEN $3 AND $4
		ORDER BY (i.lat - $5) ^ 2 + (least(abs(i.lng - $6), 360 - abs(i.lng - $6)) * $7) ^ 2, i.created_at DESC
		LIMIT $8`

	rows, err := r.db.QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng,
		center.Lat, center.Lng, geo.LngScale(center.Lat), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.NearbyItem
	for rows.Next() {
		var item models.NearbyItem
		if err := r.scanItem(rows, &item.Item, &item.OwnerName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByOwner returns every item of userID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.user_id = $1 ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := r.scanItem(rows, &item); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus changes the status of an item owned by userID.
// It returns common.ErrorNotFound when no such item belongs to userID.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, userID string, status models.ItemStatus) error {
	query := `UPDATE items SET status = $1, updated_at = now() WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, string(status), id, userID)
	if dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes an item owned by userID and returns the deleted row, so
// callers can clean up its images.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) (*models.Item, error) {
	query := `DELETE FROM items i WHERE i.id = $1 AND i.user_id = $2 RETURNING ` + itemColumns

	item := &models.Item{}
	if err := r.scanItem(r.db.QueryRowContext(ctx, query, id, userID), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}
