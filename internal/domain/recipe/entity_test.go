package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecipe() Recipe {
	return Recipe{
		ID:         1,
		Name:       "Karnıyarık",
		Type:       TypeMain,
		Time:       60,
		Difficulty: DifficultyMedium,
		Cost:       CostCheap,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validRecipe().Validate())

	r := validRecipe()
	r.ID = -1
	assert.ErrorIs(t, r.Validate(), ErrInvalidID)

	r = validRecipe()
	r.Name = "  "
	assert.ErrorIs(t, r.Validate(), ErrNameRequired)

	r = validRecipe()
	r.Type = "soup"
	assert.ErrorIs(t, r.Validate(), ErrInvalidType)

	r = validRecipe()
	r.Time = 0
	assert.ErrorIs(t, r.Validate(), ErrInvalidTime)

	r = validRecipe()
	r.Difficulty = "impossible"
	assert.ErrorIs(t, r.Validate(), ErrInvalidDifficulty)

	r = validRecipe()
	r.Cost = "free"
	assert.ErrorIs(t, r.Validate(), ErrInvalidCost)
}

func TestParseType(t *testing.T) {
	parsed, err := ParseType("Main")
	assert.NoError(t, err)
	assert.Equal(t, TypeMain, parsed)

	parsed, err = ParseType("dessert")
	assert.NoError(t, err)
	assert.Equal(t, TypeDessert, parsed)

	_, err = ParseType("soup")
	assert.ErrorIs(t, err, ErrInvalidType)
}
