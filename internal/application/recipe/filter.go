// Package recipe provides the application layer for the recipe catalog:
// category listing, the in-memory filter engine and the visible-window
// pagination used by the browsing surface.
package recipe

import (
	"strings"

	"github.com/lezzetli/v1/internal/domain/recipe"
)

// FilterAll disables the difficulty or cost predicate.
const FilterAll = "all"

// DefaultMaxTime is the widest time filter, in minutes.
const DefaultMaxTime = 240

// Side dishes that are miscategorized as mains in the catalog. Anything
// whose name contains one of these is kept out of the main-dish view no
// matter what the other filters say.
var mainDishDenylist = []string{"çorba", "salata", "cacık"}

// Criteria is the active filter state. The zero value is not useful; use
// DefaultCriteria.
type Criteria struct {
	Search     string
	Difficulty string // FilterAll or a recipe.Difficulty value
	Cost       string // FilterAll or a recipe.Cost value
	MaxTime    int    // minutes
}

// DefaultCriteria returns the widest filter state.
func DefaultCriteria() Criteria {
	return Criteria{
		Search:     "",
		Difficulty: FilterAll,
		Cost:       FilterAll,
		MaxTime:    DefaultMaxTime,
	}
}

// Filter returns the recipes satisfying every active predicate, in the
// original relative order of the input. It is a pure function of its
// inputs. The category drives the main-dish denylist: recipes browsed as
// mains are additionally checked against the side-dish keywords.
func Filter(recipes []recipe.Recipe, category Category, c Criteria) []recipe.Recipe {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if c.Difficulty != FilterAll && string(r.Difficulty) != c.Difficulty {
			continue
		}
		if c.Cost != FilterAll && string(r.Cost) != c.Cost {
			continue
		}
		if r.Time > c.MaxTime {
			continue
		}
		name := strings.ToLower(r.Name)
		if search != "" && !strings.Contains(name, search) {
			continue
		}
		if category == CategoryMain && matchesDenylist(name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesDenylist(lowerName string) bool {
	for _, keyword := range mainDishDenylist {
		if strings.Contains(lowerName, keyword) {
			return true
		}
	}
	return false
}
