// Package ai provides the application layer in front of the hosted
// generative model: schema-constrained recipe suggestions and the
// conversational kitchen assistant.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lezzetli/v1/internal/ports/inbound"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// Suggestion categories as they appear in the prompt.
const (
	CategoryMainDish = "Ana Yemek"
	CategoryDessert  = "Tatlı"
)

// Strictness levels for ingredient use.
const (
	StrictnessStrict   = "strict"
	StrictnessFlexible = "flexible"
)

const (
	// MaxIngredientsTextLength caps the free-text ingredient list.
	MaxIngredientsTextLength = 500

	// Suggestion count bounds. Requests outside the range are clamped,
	// not rejected.
	MinSuggestionCount     = 1
	MaxSuggestionCount     = 10
	DefaultSuggestionCount = 3
)

var suggestionFields = []string{"recipeName", "description", "ingredients", "instructions"}

// SuggestionService turns a free-text ingredient list into structured
// recipe suggestions via a single schema-constrained model call.
type SuggestionService struct {
	model  outbound.ModelClient
	logger *zap.Logger
}

// NewSuggestionService creates a suggestion service.
func NewSuggestionService(model outbound.ModelClient, logger *zap.Logger) inbound.SuggestionService {
	return &SuggestionService{
		model:  model,
		logger: logger.Named("suggestion-service"),
	}
}

// Suggest validates the command, builds the prompt, performs one model
// call and parses the structured response. Any malformed record fails
// the whole call; there is no partial result and no retry.
func (s *SuggestionService) Suggest(ctx context.Context, cmd inbound.SuggestCommand) ([]inbound.Suggestion, error) {
	ingredients := strings.TrimSpace(cmd.Ingredients)
	if ingredients == "" {
		return nil, errors.NewValidationError("ingredients text is required")
	}
	if len(ingredients) > MaxIngredientsTextLength {
		return nil, errors.NewValidationError(
			fmt.Sprintf("ingredients text exceeds %d characters", MaxIngredientsTextLength))
	}

	category := cmd.Category
	if category != CategoryMainDish && category != CategoryDessert {
		return nil, errors.NewValidationError("category must be Ana Yemek or Tatlı")
	}

	count := cmd.Count
	if count == 0 {
		count = DefaultSuggestionCount
	}
	if count < MinSuggestionCount {
		count = MinSuggestionCount
	}
	if count > MaxSuggestionCount {
		count = MaxSuggestionCount
	}

	strictness := cmd.Strictness
	if strictness == "" {
		strictness = StrictnessFlexible
	}
	if strictness != StrictnessStrict && strictness != StrictnessFlexible {
		return nil, errors.NewValidationError("strictness must be strict or flexible")
	}

	prompt := buildPrompt(ingredients, category, count, strictness)

	raw, err := s.model.GenerateStructured(ctx, prompt, suggestionSchema())
	if err != nil {
		s.logger.Error("suggestion generation failed",
			zap.String("category", category),
			zap.Int("count", count),
			zap.Error(err),
		)
		return nil, err
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		s.logger.Error("suggestion response rejected",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("suggestions generated",
		zap.String("category", category),
		zap.Int("requested", count),
		zap.Int("returned", len(suggestions)),
	)
	return suggestions, nil
}

// buildPrompt assembles the generation prompt. The model answers in
// Turkish and the category labels are part of the prompt contract.
func buildPrompt(ingredients, category string, count int, strictness string) string {
	var constraint string
	if strictness == StrictnessStrict {
		constraint = "Önerdiğin tarifler SADECE ve SADECE verdiğim malzemelerle yapılabilmeli. Kesinlikle ek malzeme gerektirmemeli."
	} else {
		constraint = "Verdiğim malzemeleri ana malzeme olarak kullan, ancak tariflerin daha lezzetli olması için birkaç ek temel malzeme (tuz, karabiber, yağ, su gibi) önerebilirsin."
	}

	return fmt.Sprintf(
		"Elimdeki malzemeler: \"%s\". Bu malzemeleri kullanarak %d tane, Türk mutfağına uygun, \"%s\" kategorisinde yemek tarifi öner. %s Cevabın sadece JSON formatında olsun.",
		ingredients, count, category, constraint)
}

// suggestionSchema is the JSON shape the model is constrained to: an
// array of recipe objects with all four fields required.
func suggestionSchema() *outbound.Schema {
	return &outbound.Schema{
		Type: outbound.SchemaTypeArray,
		Items: &outbound.Schema{
			Type: outbound.SchemaTypeObject,
			Properties: map[string]*outbound.Schema{
				"recipeName":  {Type: outbound.SchemaTypeString, Description: "Tarifin adı"},
				"description": {Type: outbound.SchemaTypeString, Description: "Tarifin kısa ve iştah açıcı bir açıklaması"},
				"ingredients": {
					Type:        outbound.SchemaTypeArray,
					Description: "Gerekli malzemelerin listesi",
					Items:       &outbound.Schema{Type: outbound.SchemaTypeString},
				},
				"instructions": {
					Type:        outbound.SchemaTypeArray,
					Description: "Adım adım hazırlanış talimatları",
					Items:       &outbound.Schema{Type: outbound.SchemaTypeString},
				},
			},
			Required: suggestionFields,
		},
	}
}

// parseSuggestions decodes and validates the raw model response.
func parseSuggestions(raw string) ([]inbound.Suggestion, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.New(errors.CodeAIResponseInvalid, "AI response invalid",
			"The model did not return parseable JSON").WithCause(err)
	}

	records, ok := payload.([]interface{})
	if !ok {
		return nil, errors.New(errors.CodeAIUnexpectedShape, "AI response has unexpected shape",
			"Expected a JSON array of recipe suggestions")
	}

	suggestions := make([]inbound.Suggestion, 0, len(records))
	for i, record := range records {
		fields, ok := record.(map[string]interface{})
		if !ok {
			return nil, errors.New(errors.CodeAIUnexpectedShape, "AI response has unexpected shape",
				fmt.Sprintf("Suggestion %d is not an object", i))
		}
		for _, field := range suggestionFields {
			if _, present := fields[field]; !present {
				return nil, errors.New(errors.CodeAIUnexpectedShape, "AI response has unexpected shape",
					fmt.Sprintf("Suggestion %d is missing %q", i, field))
			}
		}

		encoded, err := json.Marshal(record)
		if err != nil {
			return nil, errors.New(errors.CodeAIResponseInvalid, "AI response invalid",
				fmt.Sprintf("Suggestion %d could not be re-encoded", i)).WithCause(err)
		}
		var suggestion inbound.Suggestion
		if err := json.Unmarshal(encoded, &suggestion); err != nil {
			return nil, errors.New(errors.CodeAIUnexpectedShape, "AI response has unexpected shape",
				fmt.Sprintf("Suggestion %d has mistyped fields", i)).WithCause(err)
		}
		if strings.TrimSpace(suggestion.RecipeName) == "" {
			return nil, errors.New(errors.CodeAIUnexpectedShape, "AI response has unexpected shape",
				fmt.Sprintf("Suggestion %d has an empty recipe name", i))
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}
