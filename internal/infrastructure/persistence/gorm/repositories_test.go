package gorm

import (
	"context"
	"testing"

	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gormdb.DB {
	t.Helper()
	db, err := gormdb.Open(sqlite.Open(":memory:"), &gormdb.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func catalogRecipe(id int, name string, t recipe.Type) recipe.Recipe {
	return recipe.Recipe{
		ID:           id,
		Name:         name,
		Type:         t,
		Time:         60,
		Difficulty:   recipe.DifficultyMedium,
		Cost:         recipe.CostCheap,
		Ingredients:  []string{"malzeme"},
		Instructions: []string{"adım"},
	}
}

func TestRecipeRepositoryRoundTrip(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.BulkUpsert(ctx, []recipe.Recipe{
		catalogRecipe(1, "Karnıyarık", recipe.TypeMain),
		catalogRecipe(2, "Sütlaç", recipe.TypeDessert),
	}))

	mains, err := repo.FindByType(ctx, recipe.TypeMain)
	require.NoError(t, err)
	require.Len(t, mains, 1)
	assert.Equal(t, "Karnıyarık", mains[0].Name)
	assert.Equal(t, []string{"malzeme"}, mains[0].Ingredients)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRecipeRepositoryUpsertOverwrites(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.BulkUpsert(ctx, []recipe.Recipe{catalogRecipe(1, "Eski Ad", recipe.TypeMain)}))
	require.NoError(t, repo.BulkUpsert(ctx, []recipe.Recipe{catalogRecipe(1, "Yeni Ad", recipe.TypeMain)}))

	stored, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Yeni Ad", stored.Name)
}

func TestRecipeRepositoryFindByIDsChunksAndPreservesOrder(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	// More than one chunk's worth of records.
	batch := make([]recipe.Recipe, 0, 70)
	ids := make([]int, 0, 70)
	for i := 1; i <= 70; i++ {
		batch = append(batch, catalogRecipe(i, "Tarif", recipe.TypeMain))
		ids = append(ids, i)
	}
	require.NoError(t, repo.BulkUpsert(ctx, batch))

	// Reverse order plus a dangling ID in the middle.
	query := make([]int, 0, len(ids)+1)
	for i := len(ids) - 1; i >= 0; i-- {
		query = append(query, ids[i])
	}
	query = append(query[:35], append([]int{999}, query[35:]...)...)

	recipes, err := repo.FindByIDs(ctx, query)
	require.NoError(t, err)
	require.Len(t, recipes, 70)
	assert.Equal(t, 70, recipes[0].ID)
	assert.Equal(t, 1, recipes[69].ID)
}

func TestUserRepositoryFavoritesSetSemantics(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	profile, err := user.NewProfile("uid-1", "ayse", "ayse@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.CreateProfile(ctx, profile))

	require.NoError(t, repo.AddFavorite(ctx, "uid-1", 7))
	require.NoError(t, repo.AddFavorite(ctx, "uid-1", 7)) // duplicate insert is a no-op
	require.NoError(t, repo.AddFavorite(ctx, "uid-1", 9))

	stored, err := repo.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 9}, stored.Favorites)

	require.NoError(t, repo.RemoveFavorite(ctx, "uid-1", 7))
	require.NoError(t, repo.RemoveFavorite(ctx, "uid-1", 7)) // absent delete is a no-op

	stored, err = repo.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, []int{9}, stored.Favorites)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), zap.NewNop())

	_, err := repo.FindByUID(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRatingRepositoryLifecycle(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	r, err := rating.New(7, "uid-1", "ayse", 5, "Harika")
	require.NoError(t, err)

	stored, err := repo.Create(ctx, r)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())

	byRecipe, err := repo.FindByRecipe(ctx, 7)
	require.NoError(t, err)
	require.Len(t, byRecipe, 1)

	require.NoError(t, repo.Delete(ctx, stored.ID))
	assert.ErrorIs(t, repo.Delete(ctx, stored.ID), rating.ErrRatingNotFound)
}
