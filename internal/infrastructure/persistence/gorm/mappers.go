package gorm

import (
	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
)

func recipeToModel(r recipe.Recipe) RecipeModel {
	return RecipeModel{
		ID:           r.ID,
		Name:         r.Name,
		Type:         string(r.Type),
		Image:        r.Image,
		TimeMinutes:  r.Time,
		Difficulty:   string(r.Difficulty),
		Cost:         string(r.Cost),
		Ingredients:  StringSlice(r.Ingredients),
		Instructions: StringSlice(r.Instructions),
	}
}

func recipeFromModel(m RecipeModel) recipe.Recipe {
	return recipe.Recipe{
		ID:           m.ID,
		Name:         m.Name,
		Type:         recipe.Type(m.Type),
		Image:        m.Image,
		Time:         m.TimeMinutes,
		Difficulty:   recipe.Difficulty(m.Difficulty),
		Cost:         recipe.Cost(m.Cost),
		Ingredients:  []string(m.Ingredients),
		Instructions: []string(m.Instructions),
	}
}

// userFromModel builds the enriched profile. Favorites keep their
// insertion order, which the query preserves by creation time.
func userFromModel(m UserModel) *user.User {
	favorites := make([]int, 0, len(m.Favorites))
	for _, f := range m.Favorites {
		favorites = append(favorites, f.RecipeID)
	}
	return &user.User{
		UID:       m.UID,
		Username:  m.Username,
		Email:     m.Email,
		Favorites: favorites,
	}
}

func ratingToModel(r *rating.Rating) RatingModel {
	return RatingModel{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Username:  r.Username,
		Value:     r.Value,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ratingFromModel(m RatingModel) rating.Rating {
	return rating.Rating{
		ID:        m.ID,
		RecipeID:  m.RecipeID,
		UserID:    m.UserID,
		Username:  m.Username,
		Value:     m.Value,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}
