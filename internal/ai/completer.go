package ai

import (
	"context"
	"errors"
	"fmt"

	"care-compliance/internal/models/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Completer sends one system+user prompt pair and returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrDisabled is returned by a completer that has no credentials.
var ErrDisabled = errors.New("ai completion disabled")

type openAICompleter struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewCompleter returns a chat-completion client, or a disabled completer when
// no API key is configured.
func NewCompleter(cfg config.AIConfig) Completer {
	if cfg.APIKey == "" {
		return disabledCompleter{}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAICompleter{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type disabledCompleter struct{}

func (disabledCompleter) Complete(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
