package recipe

import "github.com/lezzetli/v1/internal/domain/recipe"

// Category is the browsing context of a listing. Favorites is a category
// of its own because it takes its source list from the caller and skips
// the main-dish denylist.
type Category string

const (
	CategoryMain      Category = "main"
	CategoryDessert   Category = "dessert"
	CategoryFavorites Category = "favorites"
)

const (
	// InitialVisibleCount is the window size after any filter change.
	InitialVisibleCount = 10

	// LoadMoreIncrement is how much one "load more" grows the window.
	LoadMoreIncrement = 10
)

// Lister pairs a source collection with filter state and a growing
// visible window. Any change to a criterion or to the category snaps the
// window back to its initial size. The filtered result itself is a pure
// function of the source and the criteria; the Lister only tracks state.
type Lister struct {
	category Category
	source   []recipe.Recipe
	criteria Criteria
	visible  int
}

// NewLister creates a lister over the given source collection.
func NewLister(category Category, source []recipe.Recipe) *Lister {
	return &Lister{
		category: category,
		source:   source,
		criteria: DefaultCriteria(),
		visible:  InitialVisibleCount,
	}
}

// Criteria returns the active filter state.
func (l *Lister) Criteria() Criteria {
	return l.criteria
}

// SetSearch updates the search text and resets the window.
func (l *Lister) SetSearch(search string) {
	l.criteria.Search = search
	l.visible = InitialVisibleCount
}

// SetDifficulty updates the difficulty filter and resets the window.
func (l *Lister) SetDifficulty(difficulty string) {
	l.criteria.Difficulty = difficulty
	l.visible = InitialVisibleCount
}

// SetCost updates the cost filter and resets the window.
func (l *Lister) SetCost(cost string) {
	l.criteria.Cost = cost
	l.visible = InitialVisibleCount
}

// SetMaxTime updates the time ceiling and resets the window.
func (l *Lister) SetMaxTime(maxTime int) {
	l.criteria.MaxTime = maxTime
	l.visible = InitialVisibleCount
}

// SetCategory swaps the browsing context and source collection and
// resets the window.
func (l *Lister) SetCategory(category Category, source []recipe.Recipe) {
	l.category = category
	l.source = source
	l.visible = InitialVisibleCount
}

// LoadMore grows the visible window by one increment.
func (l *Lister) LoadMore() {
	l.visible += LoadMoreIncrement
}

// VisibleCount returns the current window size.
func (l *Lister) VisibleCount() int {
	return l.visible
}

// Filtered returns every recipe matching the active criteria, in source
// order.
func (l *Lister) Filtered() []recipe.Recipe {
	return Filter(l.source, l.category, l.criteria)
}

// Visible returns the filtered recipes truncated to the visible window.
func (l *Lister) Visible() []recipe.Recipe {
	filtered := l.Filtered()
	if len(filtered) > l.visible {
		return filtered[:l.visible]
	}
	return filtered
}

// HasMore reports whether more filtered recipes exist beyond the window.
func (l *Lister) HasMore() bool {
	return len(l.Filtered()) > l.visible
}
