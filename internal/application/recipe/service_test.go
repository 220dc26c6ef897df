package recipe

import (
	"context"
	"testing"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/infrastructure/persistence/memory"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRecipeRepo struct {
	outbound.RecipeRepository
	typeQueries int
}

func (c *countingRecipeRepo) FindByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error) {
	c.typeQueries++
	return c.RecipeRepository.FindByType(ctx, t)
}

func seedCatalog(t *testing.T, repo outbound.RecipeRepository) {
	t.Helper()
	require.NoError(t, repo.BulkUpsert(context.Background(), []recipe.Recipe{
		{ID: 1, Name: "Karnıyarık", Type: recipe.TypeMain, Time: 60, Difficulty: recipe.DifficultyMedium, Cost: recipe.CostCheap},
		{ID: 2, Name: "Sütlaç", Type: recipe.TypeDessert, Time: 45, Difficulty: recipe.DifficultyEasy, Cost: recipe.CostCheap},
		{ID: 3, Name: "Mantı", Type: recipe.TypeMain, Time: 120, Difficulty: recipe.DifficultyHard, Cost: recipe.CostMedium},
	}))
}

func TestListByTypeCachesListing(t *testing.T) {
	repo := &countingRecipeRepo{RecipeRepository: memory.NewRecipeRepository()}
	seedCatalog(t, repo)
	svc := NewCatalogService(repo, memory.NewCacheRepository(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.ListByType(ctx, recipe.TypeMain)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := svc.ListByType(ctx, recipe.TypeMain)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.typeQueries)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := memory.NewRecipeRepository()
	seedCatalog(t, repo)
	svc := NewCatalogService(repo, memory.NewCacheRepository(), zap.NewNop())

	_, err := svc.GetByID(context.Background(), 99)
	assert.True(t, errors.Is(err, errors.CodeRecipeNotFound))
}

func TestListByIDsSkipsDangling(t *testing.T) {
	repo := memory.NewRecipeRepository()
	seedCatalog(t, repo)
	svc := NewCatalogService(repo, memory.NewCacheRepository(), zap.NewNop())

	recipes, err := svc.ListByIDs(context.Background(), []int{2, 99, 1})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, 2, recipes[0].ID)
	assert.Equal(t, 1, recipes[1].ID)
}

func TestListByIDsEmptyInput(t *testing.T) {
	svc := NewCatalogService(memory.NewRecipeRepository(), memory.NewCacheRepository(), zap.NewNop())

	recipes, err := svc.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}
