package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lezzetli/v1/internal/infrastructure/config"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.AIConfig{
		APIKey:         "test-key",
		Model:          "gemini-2.5-flash",
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return client, server
}

func candidateReply(text string) string {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestGenerateStructuredSendsSchemaAndMimeType(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateReply(`[{"recipeName":"Menemen"}]`)))
	})

	schema := &outbound.Schema{Type: outbound.SchemaTypeArray}
	raw, err := client.GenerateStructured(context.Background(), "prompt", schema)
	require.NoError(t, err)
	assert.Equal(t, `[{"recipeName":"Menemen"}]`, raw)

	genConfig, ok := captured["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	assert.NotNil(t, genConfig["responseSchema"])
}

func TestChatSendsSystemInstructionAndHistory(t *testing.T) {
	var captured map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateReply("Elbette.")))
	})

	history := []outbound.ChatTurn{
		{Role: outbound.ChatRoleUser, Text: "Merhaba"},
		{Role: outbound.ChatRoleModel, Text: "Hoş geldin"},
	}
	reply, err := client.Chat(context.Background(), "persona", history, "Menemen tarifi?")
	require.NoError(t, err)
	assert.Equal(t, "Elbette.", reply)

	contents, ok := captured["contents"].([]interface{})
	require.True(t, ok)
	assert.Len(t, contents, 3)
	assert.NotNil(t, captured["systemInstruction"])
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   errors.ErrorCode
	}{
		{"rate limited", http.StatusTooManyRequests, errors.CodeAIRateLimited},
		{"unauthorized", http.StatusUnauthorized, errors.CodeAIAuthFailed},
		{"forbidden", http.StatusForbidden, errors.CodeAIAuthFailed},
		{"server error", http.StatusInternalServerError, errors.CodeAIUnavailable},
		{"bad gateway", http.StatusBadGateway, errors.CodeAIUnavailable},
		{"other", http.StatusBadRequest, errors.CodeExternalServiceError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			_, err := client.GenerateStructured(context.Background(), "prompt", nil)
			assert.True(t, errors.Is(err, tc.code))
		})
	}
}

func TestNetworkFailureIsExternalServiceError(t *testing.T) {
	client := NewClient(config.AIConfig{
		APIKey:         "test-key",
		Model:          "gemini-2.5-flash",
		BaseURL:        "http://127.0.0.1:1", // nothing listens here
		TimeoutSeconds: 1,
	}, zap.NewNop())

	_, err := client.GenerateStructured(context.Background(), "prompt", nil)
	assert.True(t, errors.Is(err, errors.CodeExternalServiceError))
}

func TestEmptyCandidatesIsInvalidResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateStructured(context.Background(), "prompt", nil)
	assert.True(t, errors.Is(err, errors.CodeAIResponseInvalid))
}

func TestSingleAttemptPerCall(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GenerateStructured(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
