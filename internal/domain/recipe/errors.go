package recipe

import "errors"

// Domain errors for recipe validation.

var (
	ErrInvalidID         = errors.New("recipe id must not be negative")
	ErrNameRequired      = errors.New("recipe name is required")
	ErrInvalidType       = errors.New("recipe type must be main or dessert")
	ErrInvalidTime       = errors.New("recipe time must be a positive number of minutes")
	ErrInvalidDifficulty = errors.New("recipe difficulty must be easy, medium or hard")
	ErrInvalidCost       = errors.New("recipe cost must be cheap, medium or expensive")
	ErrRecipeNotFound    = errors.New("recipe not found")
)
