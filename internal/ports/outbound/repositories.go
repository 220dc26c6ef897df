// Package outbound defines the driven-side ports: interfaces the
// application uses to reach persistence, caching and external services.
package outbound

import (
	"context"
	"time"

	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
)

// RecipeRepository reads the externally-managed recipe catalog.
type RecipeRepository interface {
	FindByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error)
	FindByID(ctx context.Context, id int) (*recipe.Recipe, error)

	// FindByIDs fetches recipes for a key set, issuing backend queries in
	// chunks of at most 30 keys. IDs with no backing record are silently
	// absent from the result; callers treat them as dangling references.
	FindByIDs(ctx context.Context, ids []int) ([]recipe.Recipe, error)

	// BulkUpsert loads catalog records, keyed by recipe ID. Used by the
	// catalog import and by tests.
	BulkUpsert(ctx context.Context, recipes []recipe.Recipe) error
}

// UserRepository persists user profiles and their favorites sets.
type UserRepository interface {
	CreateProfile(ctx context.Context, u *user.User) error
	FindByUID(ctx context.Context, uid string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)

	// AddFavorite and RemoveFavorite have set-union / set-difference
	// semantics at the store level: concurrent writers never clobber each
	// other's elements, unlike a read-modify-write of the whole list.
	AddFavorite(ctx context.Context, uid string, recipeID int) error
	RemoveFavorite(ctx context.Context, uid string, recipeID int) error
}

// RatingRepository persists ratings. Ratings are insert-and-delete only;
// there is no update path.
type RatingRepository interface {
	// Create assigns the auto key and server timestamp, returning the
	// stored record.
	Create(ctx context.Context, r *rating.Rating) (*rating.Rating, error)
	FindByID(ctx context.Context, id string) (*rating.Rating, error)
	FindByRecipe(ctx context.Context, recipeID int) ([]rating.Rating, error)
	FindByUser(ctx context.Context, userID string) ([]rating.Rating, error)
	Delete(ctx context.Context, id string) error
}

// CacheRepository is a byte-level cache used for recipe listings and
// password-reset tokens.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
