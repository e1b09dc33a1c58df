package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/dbx"
	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/dmitrijs2005/localswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RatingInput is the feedback one user leaves for another.
type RatingInput struct {
	RatedUserID     string `json:"rated_user_id" validate:"required"`
	Rating          int    `json:"rating" validate:"min=1,max=5"`
	Comment         string `json:"comment" validate:"max=200"`
	TransactionType string `json:"transaction_type" validate:"required,oneof=vendo scambio presto"`
	ItemID          string `json:"item_id"`
}

type RatingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewRatingService(db *sql.DB, repomanager repomanager.RepositoryManager, log logging.Logger) *RatingService {
	return &RatingService{
		db:          db,
		repomanager: repomanager,
		log:         log.With("module", "ratings"),
	}
}

// Rate stores raterID's rating and recomputes the rated user's reputation
// in the same transaction. It returns the stored rating and the new score.
func (s *RatingService) Rate(ctx context.Context, raterID string, in RatingInput) (*models.Rating, float64, error) {
	in.RatedUserID = strings.TrimSpace(in.RatedUserID)
	in.Comment = strings.TrimSpace(in.Comment)
	in.TransactionType = strings.TrimSpace(in.TransactionType)
	in.ItemID = strings.TrimSpace(in.ItemID)

	if err := validateStruct(in); err != nil {
		return nil, 0, err
	}
	if in.RatedUserID == raterID {
		return nil, 0, common.NewValidationError("rated_user_id", "Non puoi valutare te stesso")
	}
	if in.ItemID != "" {
		if _, err := uuid.Parse(in.ItemID); err != nil {
			return nil, 0, common.NewValidationError("item_id", "Annuncio non valido")
		}
	}

	type result struct {
		rating *models.Rating
		score  float64
	}

	res, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (result, error) {
		r, err := s.repomanager.Ratings(tx).Create(ctx, &models.Rating{
			RatedUserID:     in.RatedUserID,
			RaterUserID:     raterID,
			Rating:          in.Rating,
			Comment:         in.Comment,
			TransactionType: in.TransactionType,
			ItemID:          in.ItemID,
		})
		if err != nil {
			return result{}, err
		}

		score, err := s.repomanager.Profiles(tx).RefreshReputation(ctx, in.RatedUserID)
		if err != nil {
			return result{}, err
		}
		return result{rating: r, score: score}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.log.Info(ctx, "user rated", "rated_user_id", in.RatedUserID, "score", res.score)
	return res.rating, res.score, nil
}

// List returns the ratings userID has received, newest first.
func (s *RatingService) List(ctx context.Context, userID string) ([]*models.Rating, error) {
	return s.repomanager.Ratings(s.db).ListForUser(ctx, userID)
}
