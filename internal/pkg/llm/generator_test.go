package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/projecthub/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextGeneratorUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "gemini"

	_, err := NewTextGenerator(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

func TestOpenAIGeneratorGenerate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		if len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "short digest"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIURL = server.URL
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Model = "test-model"

	gen, err := NewTextGenerator(cfg)
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "short digest", out)
	assert.Equal(t, "summarize this", gotPrompt)
}

func TestOpenAIGeneratorUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.LLM.APIURL = server.URL
	cfg.LLM.APIKey = "test-key"

	gen, err := NewTextGenerator(cfg)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestAnthropicGeneratorGenerate(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "anthropic digest"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.LLM.Provider = "anthropic"
	cfg.LLM.APIURL = server.URL
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Model = "claude-test"

	gen, err := NewTextGenerator(cfg)
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), "summarize that")
	require.NoError(t, err)
	assert.Equal(t, "anthropic digest", out)
	assert.True(t, strings.Contains(gotBody, "summarize that"))
}

func TestNewAnthropicGeneratorRequiresModel(t *testing.T) {
	_, err := NewAnthropicGenerator(config.LLMConfig{APIKey: "k"})
	assert.Error(t, err)
}

type failingGenerator struct{ err error }

func (g failingGenerator) Generate(context.Context, string) (string, error) {
	return "", g.err
}

func TestTracedGeneratorPropagatesError(t *testing.T) {
	want := errors.New("upstream down")
	gen := &tracedGenerator{provider: "openai", model: "m", next: failingGenerator{err: want}}

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, want)
}
