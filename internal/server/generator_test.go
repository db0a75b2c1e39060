package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/models"
)

const completionJSON = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gemini-2.0-flash-lite-001",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "A beam carries bending loads."}
  }]
}`

func TestNewOpenAIGenerator_RequiresKey(t *testing.T) {
	gen, err := NewOpenAIGenerator(GeneratorConfig{APIKey: "  "})
	assert.Nil(t, gen)
	assert.ErrorIs(t, err, apierrors.ErrNoGenerator)
}

func TestNewOpenAIGenerator_Defaults(t *testing.T) {
	gen, err := NewOpenAIGenerator(GeneratorConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultGeneratorModel, gen.Model())
	assert.Equal(t, models.TutorSystemPrompt, gen.systemPrompt)
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var authHeader, path string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionJSON)
	}))
	defer ts.Close()

	gen, err := NewOpenAIGenerator(GeneratorConfig{
		APIKey:       "test-key",
		BaseURL:      ts.URL + "/v1beta/openai/",
		SystemPrompt: "be a tutor",
	})
	require.NoError(t, err)

	reply, err := gen.Generate(context.Background(), "what is a beam?")
	require.NoError(t, err)
	assert.Equal(t, "A beam carries bending loads.", reply)

	assert.Equal(t, "/v1beta/openai/chat/completions", path)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, models.DefaultGeneratorModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be a tutor", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "what is a beam?", got.Messages[1].Content)
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"quota exceeded","type":"rate_limit"}}`)
	}))
	defer ts.Close()

	gen, err := NewOpenAIGenerator(GeneratorConfig{APIKey: "k", BaseURL: ts.URL + "/"})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "hi")
	require.Error(t, err)
}

func TestOpenAIGenerator_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`)
	}))
	defer ts.Close()

	gen, err := NewOpenAIGenerator(GeneratorConfig{APIKey: "k", BaseURL: ts.URL + "/", Model: "m"})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "no choices")
}
