package gorm

import (
	"context"
	"errors"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findByIDsBatchSize bounds one IN query; larger key sets are chunked.
const findByIDsBatchSize = 30

// RecipeRepository implements outbound.RecipeRepository using GORM
type RecipeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeRepository creates a recipe repository.
func NewRecipeRepository(db *gorm.DB, logger *zap.Logger) outbound.RecipeRepository {
	return &RecipeRepository{
		db:     db,
		logger: logger.Named("recipe-repository"),
	}
}

// FindByType returns all recipes of a category in ID order.
func (r *RecipeRepository) FindByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).
		Where("type = ?", string(t)).
		Order("id").
		Find(&models).Error; err != nil {
		return nil, err
	}

	recipes := make([]recipe.Recipe, 0, len(models))
	for _, m := range models {
		recipes = append(recipes, recipeFromModel(m))
	}
	return recipes, nil
}

// FindByID returns one recipe or recipe.ErrRecipeNotFound.
func (r *RecipeRepository) FindByID(ctx context.Context, id int) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}
	result := recipeFromModel(model)
	return &result, nil
}

// FindByIDs fetches recipes for a key set in chunks. Dangling IDs are
// absent from the result.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []int) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return []recipe.Recipe{}, nil
	}

	byID := make(map[int]recipe.Recipe, len(ids))
	for start := 0; start < len(ids); start += findByIDsBatchSize {
		end := start + findByIDsBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		var models []RecipeModel
		if err := r.db.WithContext(ctx).
			Where("id IN ?", ids[start:end]).
			Find(&models).Error; err != nil {
			return nil, err
		}
		for _, m := range models {
			byID[m.ID] = recipeFromModel(m)
		}
	}

	// Preserve the caller's ID order.
	recipes := make([]recipe.Recipe, 0, len(byID))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			recipes = append(recipes, rec)
		}
	}
	return recipes, nil
}

// BulkUpsert loads catalog records keyed by recipe ID.
func (r *RecipeRepository) BulkUpsert(ctx context.Context, recipes []recipe.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	models := make([]RecipeModel, 0, len(recipes))
	for _, rec := range recipes {
		if err := rec.Validate(); err != nil {
			return err
		}
		models = append(models, recipeToModel(rec))
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&models).Error; err != nil {
		return err
	}

	r.logger.Info("catalog records upserted", zap.Int("count", len(models)))
	return nil
}
