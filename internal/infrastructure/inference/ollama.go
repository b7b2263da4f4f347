package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"djigbo-server/internal/domain/chat"
)

const ollamaRequestTimeout = 120 * time.Second

// OllamaProvider talks to a local inference server through its generate
// endpoint. The transcript is flattened into a single prompt; the server is
// not conversation-aware.
type OllamaProvider struct {
	client *resty.Client
	model  string
}

var _ chat.ModelProvider = (*OllamaProvider)(nil)

// NewOllamaProvider builds the adapter for the given base URL and model.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(ollamaRequestTimeout)
	return &OllamaProvider{client: client, model: model}
}

func (p *OllamaProvider) Kind() chat.ProviderKind { return chat.ProviderOllama }

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Send(ctx context.Context, messages []chat.Message, opts chat.SendOptions) (string, error) {
	body := ollamaGenerateRequest{
		Model:  p.model,
		Prompt: FlattenPrompt(messages),
		Stream: false,
		Options: ollamaOptions{
			NumPredict: opts.EffectiveMaxTokens(),
		},
	}

	var result ollamaGenerateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ollama generate: status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.Response, nil
}

// FlattenPrompt renders the transcript as newline-separated "role: content"
// lines without a trailing newline.
func FlattenPrompt(messages []chat.Message) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
