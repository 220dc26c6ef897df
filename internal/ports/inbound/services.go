// Package inbound defines the driving-side ports: the use-case interfaces
// the HTTP layer consumes.
package inbound

import (
	"context"

	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/ports/outbound"
)

// CatalogService exposes read access to the recipe catalog.
type CatalogService interface {
	ListByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error)
	GetByID(ctx context.Context, id int) (*recipe.Recipe, error)
	ListByIDs(ctx context.Context, ids []int) ([]recipe.Recipe, error)
}

// SignupCommand carries the inputs of account creation.
type SignupCommand struct {
	Username string
	Email    string
	Password string
}

// AccountService covers authentication, profile enrichment and the
// favorites set.
type AccountService interface {
	Signup(ctx context.Context, cmd SignupCommand) (*user.User, error)
	Login(ctx context.Context, email, password string) (*outbound.AuthSession, *user.User, error)
	Logout(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error

	// CurrentUser resolves a uid to the enriched profile. A uid whose
	// identity exists but whose profile record is missing resolves to an
	// error, never to a partially populated user.
	CurrentUser(ctx context.Context, uid string) (*user.User, error)

	// ToggleFavorite adds or removes recipeID from the user's favorites
	// and returns the resulting set.
	ToggleFavorite(ctx context.Context, uid string, recipeID int) ([]int, error)

	// FavoriteRecipes resolves the user's favorite IDs to recipes,
	// dropping dangling references.
	FavoriteRecipes(ctx context.Context, uid string) ([]recipe.Recipe, error)
}

// AddRatingCommand carries the inputs of rating creation.
type AddRatingCommand struct {
	RecipeID int
	UserID   string
	Username string
	Value    int
	Comment  string
}

// RatingService covers rating creation, listing and owner-only deletion.
type RatingService interface {
	Add(ctx context.Context, cmd AddRatingCommand) (*rating.Rating, error)
	ListByRecipe(ctx context.Context, recipeID int) ([]rating.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]rating.Rating, error)
	Delete(ctx context.Context, ratingID, userID string) error
}
