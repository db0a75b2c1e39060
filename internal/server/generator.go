package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/models"
)

// Generator produces a reply for one user message
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, message string) (string, error)

// Generate implements Generator
func (f GeneratorFunc) Generate(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint.
// The default base URL is Gemini's compatibility layer.
type OpenAIGenerator struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// GeneratorConfig configures an OpenAIGenerator
type GeneratorConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// NewOpenAIGenerator creates a generator. An empty API key is an error.
func NewOpenAIGenerator(cfg GeneratorConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: %s", apierrors.ErrNoGenerator, models.ErrTextNoAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = models.DefaultGeneratorBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = models.DefaultGeneratorModel
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = models.TutorSystemPrompt
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &OpenAIGenerator{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

// Model returns the model name sent with each request
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate implements Generator
func (g *OpenAIGenerator) Generate(ctx context.Context, message string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(g.systemPrompt),
			openai.UserMessage(message),
		},
		Model: openai.ChatModel(g.model),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", g.model)
	}
	return completion.Choices[0].Message.Content, nil
}
