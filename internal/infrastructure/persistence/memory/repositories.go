// Package memory provides in-memory repository implementations used by
// tests and local development without external services.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
)

// RecipeRepository is an in-memory outbound.RecipeRepository.
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[int]recipe.Recipe
	order   []int
}

// NewRecipeRepository creates an empty in-memory recipe repository.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{recipes: make(map[int]recipe.Recipe)}
}

// FindByType returns all recipes of a category in insertion order.
func (r *RecipeRepository) FindByType(ctx context.Context, t recipe.Type) ([]recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]recipe.Recipe, 0)
	for _, id := range r.order {
		if rec := r.recipes[id]; rec.Type == t {
			result = append(result, rec)
		}
	}
	return result, nil
}

// FindByID returns one recipe or recipe.ErrRecipeNotFound.
func (r *RecipeRepository) FindByID(ctx context.Context, id int) (*recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return &rec, nil
}

// FindByIDs resolves a key set, skipping dangling IDs.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []int) ([]recipe.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.recipes[id]; ok {
			result = append(result, rec)
		}
	}
	return result, nil
}

// BulkUpsert loads catalog records keyed by recipe ID.
func (r *RecipeRepository) BulkUpsert(ctx context.Context, recipes []recipe.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range recipes {
		if err := rec.Validate(); err != nil {
			return err
		}
		if _, exists := r.recipes[rec.ID]; !exists {
			r.order = append(r.order, rec.ID)
		}
		r.recipes[rec.ID] = rec
	}
	return nil
}

// UserRepository is an in-memory outbound.UserRepository.
type UserRepository struct {
	mu        sync.RWMutex
	users     map[string]*user.User
	favorites map[string][]int
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:     make(map[string]*user.User),
		favorites: make(map[string][]int),
	}
}

// CreateProfile stores the initial profile record.
func (r *UserRepository) CreateProfile(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *u
	r.users[u.UID] = &stored
	r.favorites[u.UID] = []int{}
	return nil
}

// FindByUID loads a profile with its favorites.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.users[uid]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return r.enrich(stored), nil
}

// FindByEmail loads a profile by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.users {
		if stored.Email == email {
			return r.enrich(stored), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// AddFavorite adds recipeID to the set. Adding a present element is a
// no-op.
func (r *UserRepository) AddFavorite(ctx context.Context, uid string, recipeID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uid]; !ok {
		return user.ErrUserNotFound
	}
	for _, id := range r.favorites[uid] {
		if id == recipeID {
			return nil
		}
	}
	r.favorites[uid] = append(r.favorites[uid], recipeID)
	return nil
}

// RemoveFavorite removes recipeID from the set. Removing an absent
// element is a no-op.
func (r *UserRepository) RemoveFavorite(ctx context.Context, uid string, recipeID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uid]; !ok {
		return user.ErrUserNotFound
	}
	current := r.favorites[uid]
	next := make([]int, 0, len(current))
	for _, id := range current {
		if id != recipeID {
			next = append(next, id)
		}
	}
	r.favorites[uid] = next
	return nil
}

func (r *UserRepository) enrich(stored *user.User) *user.User {
	favorites := make([]int, len(r.favorites[stored.UID]))
	copy(favorites, r.favorites[stored.UID])
	return &user.User{
		UID:       stored.UID,
		Username:  stored.Username,
		Email:     stored.Email,
		Favorites: favorites,
	}
}

// RatingRepository is an in-memory outbound.RatingRepository.
type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[string]rating.Rating
	order   []string
}

// NewRatingRepository creates an empty in-memory rating repository.
func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[string]rating.Rating)}
}

// Create assigns the key and timestamp and stores the rating.
func (r *RatingRepository) Create(ctx context.Context, rec *rating.Rating) (*rating.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	r.ratings[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return &stored, nil
}

// FindByID returns one rating or rating.ErrRatingNotFound.
func (r *RatingRepository) FindByID(ctx context.Context, id string) (*rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.ratings[id]
	if !ok {
		return nil, rating.ErrRatingNotFound
	}
	return &stored, nil
}

// FindByRecipe returns a recipe's ratings, newest first.
func (r *RatingRepository) FindByRecipe(ctx context.Context, recipeID int) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]rating.Rating, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if stored, ok := r.ratings[r.order[i]]; ok && stored.RecipeID == recipeID {
			result = append(result, stored)
		}
	}
	return result, nil
}

// FindByUser returns a user's ratings, newest first.
func (r *RatingRepository) FindByUser(ctx context.Context, userID string) ([]rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]rating.Rating, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if stored, ok := r.ratings[r.order[i]]; ok && stored.UserID == userID {
			result = append(result, stored)
		}
	}
	return result, nil
}

// Delete removes a rating by key.
func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[id]; !ok {
		return rating.ErrRatingNotFound
	}
	delete(r.ratings, id)
	return nil
}
