// Package inference holds the model backend adapters. Each adapter owns its
// wire format and normalizes backend failures into errors; sampling
// parameters are fixed per backend.
package inference

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"djigbo-server/internal/domain/chat"
)

const (
	defaultTemperature = 0.7
	defaultTopP        = 0.9
)

// TogetherProvider talks to the hosted open-weights API through its
// OpenAI-compatible chat completions endpoint.
type TogetherProvider struct {
	client *openai.Client
	model  string
}

var _ chat.ModelProvider = (*TogetherProvider)(nil)

// NewTogetherProvider builds the adapter for the given endpoint and model.
func NewTogetherProvider(baseURL, apiKey, model string) *TogetherProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &TogetherProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *TogetherProvider) Kind() chat.ProviderKind { return chat.ProviderTogether }

func (p *TogetherProvider) Send(ctx context.Context, messages []chat.Message, opts chat.SendOptions) (string, error) {
	formatted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		formatted = append(formatted, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    formatted,
		MaxTokens:   opts.EffectiveMaxTokens(),
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	})
	if err != nil {
		return "", fmt.Errorf("together chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("together chat completion: response carried no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
