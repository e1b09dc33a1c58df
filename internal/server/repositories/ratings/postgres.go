// Package ratings provides the PostgreSQL-backed store of user ratings.
package ratings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_ratings (id, rated_user_id, rater_user_id, rating, comment, transaction_type, item_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, '')::uuid)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rating.ID, rating.RatedUserID, rating.RaterUserID, rating.Rating, rating.Comment,
		rating.TransactionType, rating.ItemID,
	).Scan(&rating.CreatedAt)
	if dbx.IsInvalidText(err) {
		return nil, common.NewValidationError("item_id", "Annuncio non valido")
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rating, nil
}

// ListForUser returns the ratings userID received, newest first.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Rating, error) {
	query := `SELECT id, rated_user_id, rater_user_id, rating, comment, transaction_type, item_id::text, created_at
		FROM user_ratings WHERE rated_user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select ratings: %w", err)
	}
	defer rows.Close()

	var result []*models.Rating
	for rows.Next() {
		var (
			item    models.Rating
			comment sql.NullString
			itemID  sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.RatedUserID, &item.RaterUserID, &item.Rating, &comment,
			&item.TransactionType, &itemID, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Comment = comment.String
		item.ItemID = itemID.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
