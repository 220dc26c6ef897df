package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RatingRepository implements outbound.RatingRepository using GORM
type RatingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRatingRepository creates a rating repository.
func NewRatingRepository(db *gorm.DB, logger *zap.Logger) outbound.RatingRepository {
	return &RatingRepository{
		db:     db,
		logger: logger.Named("rating-repository"),
	}
}

// Create assigns the key and timestamp and stores the rating.
func (r *RatingRepository) Create(ctx context.Context, rec *rating.Rating) (*rating.Rating, error) {
	model := ratingToModel(rec)
	model.ID = uuid.New().String()
	model.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	stored := ratingFromModel(model)
	return &stored, nil
}

// FindByID returns one rating or rating.ErrRatingNotFound.
func (r *RatingRepository) FindByID(ctx context.Context, id string) (*rating.Rating, error) {
	var model RatingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, err
	}
	result := ratingFromModel(model)
	return &result, nil
}

// FindByRecipe returns a recipe's ratings, newest first.
func (r *RatingRepository) FindByRecipe(ctx context.Context, recipeID int) ([]rating.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return ratingsFromModels(models), nil
}

// FindByUser returns a user's ratings, newest first.
func (r *RatingRepository) FindByUser(ctx context.Context, userID string) ([]rating.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return ratingsFromModels(models), nil
}

// Delete removes a rating by key.
func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&RatingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

func ratingsFromModels(models []RatingModel) []rating.Rating {
	ratings := make([]rating.Rating, 0, len(models))
	for _, m := range models {
		ratings = append(ratings, ratingFromModel(m))
	}
	return ratings
}
