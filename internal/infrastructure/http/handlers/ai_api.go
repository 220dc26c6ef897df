package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/v1/internal/infrastructure/http/middleware"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// AIHandlers handles recipe suggestions and the kitchen assistant chat.
type AIHandlers struct {
	suggestions inbound.SuggestionService
	chat        inbound.ChatService
	logger      *zap.Logger
}

// NewAIHandlers creates the AI handler set.
func NewAIHandlers(suggestions inbound.SuggestionService, chat inbound.ChatService, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{
		suggestions: suggestions,
		chat:        chat,
		logger:      logger.Named("ai-handlers"),
	}
}

type suggestRequest struct {
	Ingredients string `json:"ingredients" validate:"required,max=500"`
	Category    string `json:"category" validate:"required"`
	Count       int    `json:"count" validate:"omitempty,min=1,max=10"`
	Strictness  string `json:"strictness" validate:"omitempty,oneof=strict flexible"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// Suggest handles POST /api/v1/ai/suggestions
func (h *AIHandlers) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	suggestions, err := h.suggestions.Suggest(c.Request.Context(), inbound.SuggestCommand{
		Ingredients: req.Ingredients,
		Category:    req.Category,
		Count:       req.Count,
		Strictness:  req.Strictness,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"suggestions": suggestions}, "")
}

// SendChat handles POST /api/v1/ai/chat
func (h *AIHandlers) SendChat(c *gin.Context) {
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), middleware.UID(c), req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, reply, "")
}

// ChatTranscript handles GET /api/v1/ai/chat
func (h *AIHandlers) ChatTranscript(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"messages": h.chat.Transcript(middleware.UID(c)),
	}, "")
}

// ResetChat handles DELETE /api/v1/ai/chat
func (h *AIHandlers) ResetChat(c *gin.Context) {
	h.chat.Reset(middleware.UID(c))
	respond(c, http.StatusOK, nil, "Conversation reset")
}
