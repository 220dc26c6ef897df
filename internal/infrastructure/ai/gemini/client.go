// Package gemini provides the Gemini API transport for recipe generation
// and the kitchen assistant
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lezzetli/v1/internal/infrastructure/config"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
)

// Client implements the ModelClient interface against the Gemini
// generateContent API. Every call is a single attempt; failures are
// classified, never retried here.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Gemini client from configuration.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	if cfg.APIKey == "" {
		logger.Error("Gemini API key is not configured, AI features will fail at call time")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("gemini-client"),
	}
}

// Gemini API structures
type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string           `json:"responseMimeType,omitempty"`
	ResponseSchema   *outbound.Schema `json:"responseSchema,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateStructured performs a single-turn generation constrained to the
// given JSON schema and returns the raw response text.
func (c *Client) GenerateStructured(ctx context.Context, prompt string, schema *outbound.Schema) (string, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: outbound.ChatRoleUser, Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	return c.generate(ctx, req)
}

// Chat sends one user message on top of an existing transcript, with a
// fixed persona system instruction, and returns the model's reply.
func (c *Client) Chat(ctx context.Context, systemInstruction string, history []outbound.ChatTurn, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{
			Role:  turn.Role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	contents = append(contents, content{
		Role:  outbound.ChatRoleUser,
		Parts: []part{{Text: message}},
	})

	req := generateContentRequest{
		Contents: contents,
		SystemInstruction: &content{
			Parts: []part{{Text: systemInstruction}},
		},
	}
	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, payload generateContentRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewInternalError("failed to encode model request").WithCause(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewInternalError("failed to build model request").WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("model request failed", zap.Error(err))
		return "", errors.NewExternalServiceError("gemini", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewExternalServiceError("gemini", err)
	}

	c.logger.Debug("model call completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(resp.StatusCode, raw)
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", errors.New(errors.CodeAIResponseInvalid, "AI response invalid",
			"The model response envelope could not be decoded").WithCause(err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New(errors.CodeAIResponseInvalid, "AI response invalid",
			"The model returned no candidates")
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// classifyStatus maps a non-200 API status to an error category.
func classifyStatus(status int, body []byte) *errors.AppError {
	detail := fmt.Sprintf("model API returned status %d", status)
	switch {
	case status == http.StatusTooManyRequests:
		return errors.New(errors.CodeAIRateLimited, "AI service rate limited", detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.New(errors.CodeAIAuthFailed, "AI service authentication failed", detail)
	case status >= 500:
		return errors.New(errors.CodeAIUnavailable, "AI service unavailable", detail)
	default:
		return errors.New(errors.CodeExternalServiceError, "External service error", detail).
			WithMetadata("body", string(body))
	}
}
