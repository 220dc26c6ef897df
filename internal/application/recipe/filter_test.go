package recipe

import (
	"testing"

	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
)

func mainDish(id int, name string, difficulty recipe.Difficulty, cost recipe.Cost, minutes int) recipe.Recipe {
	return recipe.Recipe{
		ID:         id,
		Name:       name,
		Type:       recipe.TypeMain,
		Time:       minutes,
		Difficulty: difficulty,
		Cost:       cost,
	}
}

func TestFilterDefaultCriteriaKeepsEverything(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "Karnıyarık", recipe.DifficultyMedium, recipe.CostCheap, 60),
		mainDish(2, "Hünkar Beğendi", recipe.DifficultyHard, recipe.CostExpensive, 90),
	}

	filtered := Filter(recipes, CategoryDessert, DefaultCriteria())

	assert.Len(t, filtered, 2)
}

func TestFilterPreservesSourceOrder(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(3, "Mantı", recipe.DifficultyHard, recipe.CostMedium, 120),
		mainDish(1, "Menemen", recipe.DifficultyEasy, recipe.CostCheap, 20),
		mainDish(2, "Kuru Fasulye", recipe.DifficultyMedium, recipe.CostCheap, 90),
	}

	filtered := Filter(recipes, CategoryMain, DefaultCriteria())

	ids := make([]int, 0, len(filtered))
	for _, r := range filtered {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestFilterBySearchIsCaseInsensitive(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "İzmir Köfte", recipe.DifficultyMedium, recipe.CostMedium, 60),
		mainDish(2, "Menemen", recipe.DifficultyEasy, recipe.CostCheap, 20),
	}

	criteria := DefaultCriteria()
	criteria.Search = "köfte"

	filtered := Filter(recipes, CategoryMain, criteria)

	assert.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterByDifficultyAndCost(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "Menemen", recipe.DifficultyEasy, recipe.CostCheap, 20),
		mainDish(2, "Mantı", recipe.DifficultyHard, recipe.CostCheap, 120),
		mainDish(3, "Hünkar Beğendi", recipe.DifficultyHard, recipe.CostExpensive, 90),
	}

	criteria := DefaultCriteria()
	criteria.Difficulty = string(recipe.DifficultyHard)
	criteria.Cost = string(recipe.CostCheap)

	filtered := Filter(recipes, CategoryMain, criteria)

	assert.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].ID)
}

func TestFilterByMaxTimeIsInclusive(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "Menemen", recipe.DifficultyEasy, recipe.CostCheap, 30),
		mainDish(2, "Kuru Fasulye", recipe.DifficultyMedium, recipe.CostCheap, 31),
	}

	criteria := DefaultCriteria()
	criteria.MaxTime = 30

	filtered := Filter(recipes, CategoryMain, criteria)

	assert.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
}

func TestFilterExcludesSideDishesFromMains(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "Mercimek Çorbası", recipe.DifficultyEasy, recipe.CostCheap, 30),
		mainDish(2, "Çoban Salatası", recipe.DifficultyEasy, recipe.CostCheap, 10),
		mainDish(3, "Cacık", recipe.DifficultyEasy, recipe.CostCheap, 10),
		mainDish(4, "Karnıyarık", recipe.DifficultyMedium, recipe.CostCheap, 60),
	}

	filtered := Filter(recipes, CategoryMain, DefaultCriteria())

	assert.Len(t, filtered, 1)
	assert.Equal(t, 4, filtered[0].ID)
}

func TestFilterDenylistOnlyAppliesToMainCategory(t *testing.T) {
	recipes := []recipe.Recipe{
		mainDish(1, "Mercimek Çorbası", recipe.DifficultyEasy, recipe.CostCheap, 30),
	}

	assert.Empty(t, Filter(recipes, CategoryMain, DefaultCriteria()))
	assert.Len(t, Filter(recipes, CategoryFavorites, DefaultCriteria()), 1)
}

func TestFilterEmptyInput(t *testing.T) {
	filtered := Filter(nil, CategoryMain, DefaultCriteria())

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
