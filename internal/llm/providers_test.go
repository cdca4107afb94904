package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rewritePayload = `{"content":"Plants turn sunlight into food.","hints":["Think of a solar panel."]}`

func rewriteSchema() *Schema {
	return &Schema{
		Name: "test-rewrite",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{"type": "string"},
				"hints":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required":             []any{"content", "hints"},
			"additionalProperties": false,
		},
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 40},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(rewritePayload, "end_turn")))

	resp, err := p.Generate(context.Background(), Request{
		System:    "Rewrite study material.",
		Messages:  UserMessage("Photosynthesis..."),
		Schema:    rewriteSchema(),
		MaxTokens: 512,
	})
	require.NoError(t, err)
	assert.JSONEq(t, rewritePayload, string(resp.Content))
	assert.Equal(t, 120, resp.Usage.InputTokens)
	assert.Equal(t, 160, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropic(t, jsonHandler(tt.status, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "nope"},
			}))
			_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type %T: %v", err, err)
		})
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"content":"Plants`, "max_tokens")))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: rewriteSchema(), MaxTokens: 5})
	var truncated *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &truncated), "got %v", err)
}

func TestAnthropicProvider_SchemaViolation(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"content":42}`, "end_turn")))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: rewriteSchema(), MaxTokens: 50})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini", name: ProviderOpenAI}
}

func openaiCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 80, "completion_tokens": 20, "total_tokens": 100},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, openaiCompletion(rewritePayload, "stop"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "Rewrite study material.",
		Messages:  UserMessage("Photosynthesis..."),
		Schema:    rewriteSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "test-rewrite", got.ResponseFormat.JSONSchema.Name)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	errBody := map[string]any{"error": map[string]any{"type": "server_error", "message": "nope"}}

	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, errBody))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "got %T", err)

	p = newTestOpenAI(t, jsonHandler(http.StatusBadGateway, errBody))
	_, err = p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := openaiCompletion("", "stop")
	body["choices"] = []map[string]any{}
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, body))

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	var invalid *ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, openaiCompletion(`{"content":"Pla`, "length")))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	var truncated *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &truncated), "got %v", err)
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "google/gemini-2.0-flash-exp"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, p.Name())
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	_, err = NewOpenRouterProvider(OpenRouterConfig{})
	assert.Error(t, err)
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		aliases map[string]string
		in      string
		want    string
	}{
		{anthropicAliases, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicAliases, "claude-opus-x", "claude-opus-x"},
		{openaiAliases, "gpt-4o", "gpt-4o"},
		{geminiAliases, "gemini-flash", "gemini-2.0-flash"},
		{geminiAliases, "gemini-2.5-pro", "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(rewriteSchema().Definition)

	assert.Equal(t, "OBJECT", string(s.Type))
	require.Len(t, s.Properties, 2)
	assert.Equal(t, "STRING", string(s.Properties["content"].Type))
	assert.Equal(t, "ARRAY", string(s.Properties["hints"].Type))
	assert.Equal(t, "STRING", string(s.Properties["hints"].Items.Type))
	assert.Equal(t, []string{"content", "hints"}, s.Required)

	enum := geminiSchema(map[string]any{"type": "string", "enum": []string{"a", "b"}})
	assert.Equal(t, []string{"a", "b"}, enum.Enum)
}
