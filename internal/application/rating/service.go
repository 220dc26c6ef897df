// Package rating provides the application layer for ratings: validated
// creation, listing by recipe or author, and owner-only deletion.
package rating

import (
	"context"

	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the rating use cases.
type Service struct {
	ratings outbound.RatingRepository
	logger  *zap.Logger
}

// NewService creates a rating service.
func NewService(ratings outbound.RatingRepository, logger *zap.Logger) inbound.RatingService {
	return &Service{
		ratings: ratings,
		logger:  logger.Named("rating-service"),
	}
}

// Add validates and stores a rating. Validation failures never reach the
// store.
func (s *Service) Add(ctx context.Context, cmd inbound.AddRatingCommand) (*rating.Rating, error) {
	r, err := rating.New(cmd.RecipeID, cmd.UserID, cmd.Username, cmd.Value, cmd.Comment)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	stored, err := s.ratings.Create(ctx, r)
	if err != nil {
		return nil, errors.NewDatabaseError("create rating", err)
	}

	s.logger.Info("rating added",
		zap.String("rating_id", stored.ID),
		zap.Int("recipe_id", stored.RecipeID),
		zap.String("user_id", stored.UserID),
		zap.Int("value", stored.Value),
	)
	return stored, nil
}

// ListByRecipe returns every rating for a recipe.
func (s *Service) ListByRecipe(ctx context.Context, recipeID int) ([]rating.Rating, error) {
	ratings, err := s.ratings.FindByRecipe(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("list ratings by recipe", err)
	}
	return ratings, nil
}

// ListByUser returns every rating authored by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]rating.Rating, error) {
	ratings, err := s.ratings.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list ratings by user", err)
	}
	return ratings, nil
}

// Delete removes a rating. Only the author may delete; a mismatched
// requester gets an authorization error and the record stays intact.
func (s *Service) Delete(ctx context.Context, ratingID, userID string) error {
	if ratingID == "" {
		return errors.NewValidationError("rating id is required")
	}
	if userID == "" {
		return errors.NewValidationError("user id is required")
	}

	r, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		if err == rating.ErrRatingNotFound {
			return errors.NewRatingNotFoundError(ratingID)
		}
		return errors.NewDatabaseError("find rating", err)
	}

	if !r.OwnedBy(userID) {
		return errors.NewNotRatingOwnerError()
	}

	if err := s.ratings.Delete(ctx, ratingID); err != nil {
		return errors.NewDatabaseError("delete rating", err)
	}

	s.logger.Info("rating deleted",
		zap.String("rating_id", ratingID),
		zap.String("user_id", userID),
	)
	return nil
}
