package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderGoogle = "googleai"
	ProviderOpenAI = "openai"

	DefaultModel = "gemini-1.5-flash"
)

// ModelConfig selects the backing model. An empty Provider means googleai.
type ModelConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

func NewModel(ctx context.Context, cfg ModelConfig) (llms.Model, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is empty")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGoogle, "gemini":
		model := cfg.Model
		if model == "" {
			model = DefaultModel
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai client: %w", err)
		}
		return llm, nil
	case ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
