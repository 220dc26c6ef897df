// Package recipe contains the catalog recipe domain model. Recipes are
// authored out of band and are immutable from the application's point of
// view; the domain layer only defines their shape and invariants.
package recipe

import "strings"

// Type categorizes a recipe as a main dish or a dessert.
type Type string

const (
	TypeMain    Type = "main"
	TypeDessert Type = "dessert"
)

// ParseType parses a recipe type from its wire representation.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeMain:
		return TypeMain, nil
	case TypeDessert:
		return TypeDessert, nil
	default:
		return "", ErrInvalidType
	}
}

// Difficulty is the preparation difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Cost is the estimated cost bracket.
type Cost string

const (
	CostCheap     Cost = "cheap"
	CostMedium    Cost = "medium"
	CostExpensive Cost = "expensive"
)

// Recipe is the core catalog entity. IDs are stable integers assigned by
// the catalog import, not by this service.
type Recipe struct {
	ID           int
	Name         string
	Type         Type
	Image        string
	Time         int // total preparation and cooking time, minutes
	Difficulty   Difficulty
	Cost         Cost
	Ingredients  []string
	Instructions []string
}

// Validate checks the recipe's invariants.
func (r Recipe) Validate() error {
	if r.ID < 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if r.Type != TypeMain && r.Type != TypeDessert {
		return ErrInvalidType
	}
	if r.Time <= 0 {
		return ErrInvalidTime
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ErrInvalidDifficulty
	}
	switch r.Cost {
	case CostCheap, CostMedium, CostExpensive:
	default:
		return ErrInvalidCost
	}
	return nil
}
