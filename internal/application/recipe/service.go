package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

const listCacheTTL = 10 * time.Minute

// CatalogService reads the recipe catalog, with a cache in front of the
// per-category listings. The catalog is written by an external import, so
// stale cache entries only delay new recipes, never corrupt anything.
type CatalogService struct {
	recipes outbound.RecipeRepository
	cache   outbound.CacheRepository
	logger  *zap.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	recipes outbound.RecipeRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.CatalogService {
	return &CatalogService{
		recipes: recipes,
		cache:   cache,
		logger:  logger.Named("catalog-service"),
	}
}

// ListByType returns all recipes of the given category.
func (s *CatalogService) ListByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error) {
	key := fmt.Sprintf("recipes:type:%s", t)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		var recipes []recipe.Recipe
		if err := json.Unmarshal(cached, &recipes); err == nil {
			return recipes, nil
		}
		// Undecodable cache entries are dropped and refetched.
		s.cache.Delete(ctx, key)
	}

	recipes, err := s.recipes.FindByType(ctx, t)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes by type", err)
	}

	if payload, err := json.Marshal(recipes); err == nil {
		if err := s.cache.Set(ctx, key, payload, listCacheTTL); err != nil {
			s.logger.Warn("failed to cache recipe listing",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	return recipes, nil
}

// GetByID returns a single recipe.
func (s *CatalogService) GetByID(ctx context.Context, id int) (*recipe.Recipe, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if err == recipe.ErrRecipeNotFound {
			return nil, errors.NewRecipeNotFoundError(id)
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return r, nil
}

// ListByIDs resolves a key set to recipes. Dangling IDs are absent from
// the result rather than errors; the repository chunks the backend
// queries.
func (s *CatalogService) ListByIDs(ctx context.Context, ids []int) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return []recipe.Recipe{}, nil
	}
	recipes, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes by ids", err)
	}
	return recipes, nil
}
