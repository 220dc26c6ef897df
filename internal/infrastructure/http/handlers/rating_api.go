package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/v1/internal/domain/rating"
	"github.com/lezzetli/v1/internal/infrastructure/http/middleware"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// RatingHandlers handles rating creation, listing and deletion.
type RatingHandlers struct {
	ratings  inbound.RatingService
	accounts inbound.AccountService
	logger   *zap.Logger
}

// NewRatingHandlers creates the rating handler set.
func NewRatingHandlers(ratings inbound.RatingService, accounts inbound.AccountService, logger *zap.Logger) *RatingHandlers {
	return &RatingHandlers{
		ratings:  ratings,
		accounts: accounts,
		logger:   logger.Named("rating-handlers"),
	}
}

type addRatingRequest struct {
	Value   int    `json:"value" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type ratingResponse struct {
	ID        string `json:"id"`
	RecipeID  int    `json:"recipe_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Value     int    `json:"value"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toRatingResponse(r rating.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Username:  r.Username,
		Value:     r.Value,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Unix(),
	}
}

func toRatingResponses(ratings []rating.Rating) []ratingResponse {
	result := make([]ratingResponse, 0, len(ratings))
	for _, r := range ratings {
		result = append(result, toRatingResponse(r))
	}
	return result
}

// Add handles POST /api/v1/recipes/:id/ratings
func (h *RatingHandlers) Add(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, errors.NewValidationError("recipe id must be an integer"))
		return
	}

	var req addRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	uid := middleware.UID(c)
	profile, err := h.accounts.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stored, err := h.ratings.Add(c.Request.Context(), inbound.AddRatingCommand{
		RecipeID: recipeID,
		UserID:   uid,
		Username: profile.Username,
		Value:    req.Value,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, toRatingResponse(*stored), "Rating added")
}

// ListByRecipe handles GET /api/v1/recipes/:id/ratings
func (h *RatingHandlers) ListByRecipe(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, errors.NewValidationError("recipe id must be an integer"))
		return
	}

	ratings, err := h.ratings.ListByRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, toRatingResponses(ratings), "")
}

// ListMine handles GET /api/v1/ratings/mine
func (h *RatingHandlers) ListMine(c *gin.Context) {
	ratings, err := h.ratings.ListByUser(c.Request.Context(), middleware.UID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, toRatingResponses(ratings), "")
}

// Delete handles DELETE /api/v1/ratings/:ratingId
func (h *RatingHandlers) Delete(c *gin.Context) {
	if err := h.ratings.Delete(c.Request.Context(), c.Param("ratingId"), middleware.UID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Rating deleted")
}
