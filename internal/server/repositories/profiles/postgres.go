// Package profiles provides the PostgreSQL-backed repository for public
// user profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE of unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, COALESCE(username, ''), COALESCE(full_name, ''), COALESCE(avatar_url, ''), COALESCE(phone, ''),
	reputation_score, total_transactions, successful_transactions, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }, p *models.Profile) error {
	return row.Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Phone,
		&p.ReputationScore, &p.TotalTransactions, &p.SuccessfulTransactions, &p.CreatedAt, &p.UpdatedAt)
}

// Get returns the profile of id or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + columns + ` FROM profiles WHERE id = $1`

	p := &models.Profile{}
	if err := scanProfile(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Upsert creates or updates the editable fields of a profile. Empty strings
// are stored as NULL. A username taken by someone else is reported as a
// validation error on "username".
func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, username, full_name, avatar_url, phone)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			phone = EXCLUDED.phone,
			updated_at = now()
		RETURNING ` + columns

	out := &models.Profile{}
	err := scanProfile(r.db.QueryRowContext(ctx, query, p.ID, p.Username, p.FullName, p.AvatarURL, p.Phone), out)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.NewValidationError("username", "Username già in uso")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// RefreshReputation recomputes the reputation score of userID as the average
// of the ratings received, creating an empty profile when none exists.
func (r *PostgresRepository) RefreshReputation(ctx context.Context, userID string) (float64, error) {
	query := `
		INSERT INTO profiles (id, reputation_score, total_transactions)
		SELECT $1, COALESCE(AVG(rating), 0), COUNT(*) FROM user_ratings WHERE rated_user_id = $1
		ON CONFLICT (id) DO UPDATE SET
			reputation_score = EXCLUDED.reputation_score,
			total_transactions = EXCLUDED.total_transactions,
			updated_at = now()
		RETURNING reputation_score
	`
	var score float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&score); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return score, nil
}
