package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apprecipe "github.com/lezzetli/v1/internal/application/recipe"
	"github.com/lezzetli/v1/internal/domain/recipe"
	"github.com/lezzetli/v1/internal/infrastructure/http/middleware"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// RecipeHandlers handles catalog browsing and favorites.
type RecipeHandlers struct {
	catalog  inbound.CatalogService
	accounts inbound.AccountService
	logger   *zap.Logger
}

// NewRecipeHandlers creates the recipe handler set.
func NewRecipeHandlers(catalog inbound.CatalogService, accounts inbound.AccountService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		catalog:  catalog,
		accounts: accounts,
		logger:   logger.Named("recipe-handlers"),
	}
}

type recipeResponse struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Image        string   `json:"image,omitempty"`
	Time         int      `json:"time"`
	Difficulty   string   `json:"difficulty"`
	Cost         string   `json:"cost"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type listResponse struct {
	Recipes []recipeResponse `json:"recipes"`
	Total   int              `json:"total"`
	HasMore bool             `json:"has_more"`
}

func toRecipeResponse(r recipe.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Type:         string(r.Type),
		Image:        r.Image,
		Time:         r.Time,
		Difficulty:   string(r.Difficulty),
		Cost:         string(r.Cost),
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

func toRecipeResponses(recipes []recipe.Recipe) []recipeResponse {
	result := make([]recipeResponse, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, toRecipeResponse(r))
	}
	return result
}

// List handles GET /api/v1/recipes. Query parameters select the category
// and filters. Without explicit limit/offset the result is windowed the
// way the browsing views page: an initial window that each extra "page"
// grows by one load-more increment.
func (h *RecipeHandlers) List(c *gin.Context) {
	category, source, err := h.resolveCategory(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if c.Query("limit") == "" && c.Query("offset") == "" {
		h.listWindowed(c, category, source, criteria)
		return
	}

	filtered := apprecipe.Filter(source, category, criteria)

	limit := apprecipe.InitialVisibleCount
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			respondError(c, h.logger, errors.NewValidationError("limit must be a positive integer"))
			return
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil || offset < 0 {
			respondError(c, h.logger, errors.NewValidationError("offset must be a non-negative integer"))
			return
		}
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	respond(c, http.StatusOK, listResponse{
		Recipes: toRecipeResponses(filtered[offset:end]),
		Total:   total,
		HasMore: end < total,
	}, "")
}

// listWindowed serves the load-more style of paging through a Lister.
func (h *RecipeHandlers) listWindowed(c *gin.Context, category apprecipe.Category, source []recipe.Recipe, criteria apprecipe.Criteria) {
	pages := 1
	if raw := c.Query("pages"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, h.logger, errors.NewValidationError("pages must be a positive integer"))
			return
		}
		pages = parsed
	}

	lister := apprecipe.NewLister(category, source)
	lister.SetSearch(criteria.Search)
	lister.SetDifficulty(criteria.Difficulty)
	lister.SetCost(criteria.Cost)
	lister.SetMaxTime(criteria.MaxTime)
	for page := 1; page < pages; page++ {
		lister.LoadMore()
	}

	respond(c, http.StatusOK, listResponse{
		Recipes: toRecipeResponses(lister.Visible()),
		Total:   len(lister.Filtered()),
		HasMore: lister.HasMore(),
	}, "")
}

// Get handles GET /api/v1/recipes/:id
func (h *RecipeHandlers) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, errors.NewValidationError("recipe id must be an integer"))
		return
	}

	r, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, toRecipeResponse(*r), "")
}

// ToggleFavorite handles POST /api/v1/recipes/:id/favorite
func (h *RecipeHandlers) ToggleFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, errors.NewValidationError("recipe id must be an integer"))
		return
	}

	favorites, err := h.accounts.ToggleFavorite(c.Request.Context(), middleware.UID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"favorites": favorites}, "Favorites updated")
}

// resolveCategory picks the source collection for a listing request.
func (h *RecipeHandlers) resolveCategory(c *gin.Context) (apprecipe.Category, []recipe.Recipe, error) {
	raw := c.DefaultQuery("category", string(apprecipe.CategoryMain))
	switch apprecipe.Category(raw) {
	case apprecipe.CategoryMain:
		source, err := h.catalog.ListByType(c.Request.Context(), recipe.TypeMain)
		return apprecipe.CategoryMain, source, err
	case apprecipe.CategoryDessert:
		source, err := h.catalog.ListByType(c.Request.Context(), recipe.TypeDessert)
		return apprecipe.CategoryDessert, source, err
	case apprecipe.CategoryFavorites:
		uid := middleware.UID(c)
		if uid == "" {
			return "", nil, errors.NewLoginRequiredError("browse favorites")
		}
		source, err := h.accounts.FavoriteRecipes(c.Request.Context(), uid)
		return apprecipe.CategoryFavorites, source, err
	default:
		return "", nil, errors.NewValidationError("category must be main, dessert or favorites")
	}
}

func parseCriteria(c *gin.Context) (apprecipe.Criteria, error) {
	criteria := apprecipe.DefaultCriteria()
	criteria.Search = c.Query("search")
	if difficulty := c.Query("difficulty"); difficulty != "" {
		criteria.Difficulty = difficulty
	}
	if cost := c.Query("cost"); cost != "" {
		criteria.Cost = cost
	}
	if raw := c.Query("max_time"); raw != "" {
		maxTime, err := strconv.Atoi(raw)
		if err != nil || maxTime < 1 {
			return criteria, errors.NewValidationError("max_time must be a positive integer")
		}
		criteria.MaxTime = maxTime
	}
	return criteria, nil
}
