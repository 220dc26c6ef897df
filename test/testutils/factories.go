// Package testutils provides test data factories for consistent test
// data generation
package testutils

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/domain/user"
)

// RecipeFactory builds catalog recipes with realistic fields.
type RecipeFactory struct {
	faker  *gofakeit.Faker
	nextID int
}

// NewRecipeFactory creates a recipe factory with a seeded faker so test
// data stays reproducible.
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker:  gofakeit.New(seed),
		nextID: 1,
	}
}

// Recipe builds one valid recipe of the given type.
func (f *RecipeFactory) Recipe(t recipe.Type) recipe.Recipe {
	id := f.nextID
	f.nextID++
	return recipe.Recipe{
		ID:         id,
		Name:       f.faker.Dinner(),
		Type:       t,
		Image:      f.faker.URL(),
		Time:       f.faker.Number(10, 180),
		Difficulty: f.pick(recipe.DifficultyEasy, recipe.DifficultyMedium, recipe.DifficultyHard),
		Cost:       f.pickCost(),
		Ingredients: []string{
			f.faker.Vegetable(),
			f.faker.Fruit(),
		},
		Instructions: []string{
			f.faker.Sentence(8),
			f.faker.Sentence(8),
		},
	}
}

// Named builds a recipe with a fixed name, for denylist and search tests.
func (f *RecipeFactory) Named(name string, t recipe.Type) recipe.Recipe {
	r := f.Recipe(t)
	r.Name = name
	return r
}

// Batch builds n recipes of the given type.
func (f *RecipeFactory) Batch(n int, t recipe.Type) []recipe.Recipe {
	recipes := make([]recipe.Recipe, 0, n)
	for i := 0; i < n; i++ {
		recipes = append(recipes, f.Recipe(t))
	}
	return recipes
}

func (f *RecipeFactory) pick(options ...recipe.Difficulty) recipe.Difficulty {
	return options[f.faker.Number(0, len(options)-1)]
}

func (f *RecipeFactory) pickCost() recipe.Cost {
	options := []recipe.Cost{recipe.CostCheap, recipe.CostMedium, recipe.CostExpensive}
	return options[f.faker.Number(0, len(options)-1)]
}

// UserFactory builds user profiles.
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a user factory with a seeded faker.
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// User builds a profile with a random identity and empty favorites.
func (f *UserFactory) User() *user.User {
	return &user.User{
		UID:       f.faker.UUID(),
		Username:  f.faker.Username(),
		Email:     f.faker.Email(),
		Favorites: []int{},
	}
}
