package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ErrEmptyPrompt is returned for a prompt that is blank after trimming.
var ErrEmptyPrompt = errors.New("user prompt is required")

// Generator asks a language model to break a request into tasks.
type Generator struct {
	model llms.Model
	opts  []llms.CallOption
}

func NewGenerator(model llms.Model, opts ...llms.CallOption) *Generator {
	return &Generator{model: model, opts: opts}
}

// Generate sends prompt wrapped in the instruction template and parses
// the reply. It never returns a nil slice on success.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(BuildPrompt(prompt))},
		},
	}
	resp, err := g.model.GenerateContent(ctx, messages, g.opts...)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("generate content: model returned no choices")
	}
	return ParseTasks(resp.Choices[0].Content), nil
}
