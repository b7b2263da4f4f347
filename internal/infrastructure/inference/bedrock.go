package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"djigbo-server/internal/domain/chat"
)

// BedrockInvoker is the slice of the managed cloud runtime client the adapter
// needs. Narrowed for testability.
type BedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider talks to the managed cloud model API. The transcript is
// rendered with the llama3 chat template the hosted model expects.
type BedrockProvider struct {
	client  BedrockInvoker
	modelID string
}

var _ chat.ModelProvider = (*BedrockProvider)(nil)

// NewBedrockProvider builds the adapter around an SDK runtime client.
func NewBedrockProvider(client BedrockInvoker, modelID string) *BedrockProvider {
	return &BedrockProvider{client: client, modelID: modelID}
}

func (p *BedrockProvider) Kind() chat.ProviderKind { return chat.ProviderBedrock }

type bedrockRequest struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type bedrockResponse struct {
	Generation string `json:"generation"`
}

func (p *BedrockProvider) Send(ctx context.Context, messages []chat.Message, opts chat.SendOptions) (string, error) {
	payload, err := json.Marshal(bedrockRequest{
		Prompt:      BuildLlamaPrompt(messages),
		MaxGenLen:   opts.EffectiveMaxTokens(),
		Temperature: defaultTemperature,
		TopP:        defaultTopP,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke: marshal request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke: %w", err)
	}

	var result bedrockResponse
	if err := json.Unmarshal(out.Body, &result); err != nil {
		return "", fmt.Errorf("bedrock invoke: decode response: %w", err)
	}
	return result.Generation, nil
}

// BuildLlamaPrompt renders the transcript with the llama3 instruction
// template, ending with an open assistant header so the model continues as
// the assistant.
func BuildLlamaPrompt(messages []chat.Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case chat.RoleSystem:
			b.WriteString("<|begin_of_text|><|start_header_id|>system<|end_header_id|>\n")
			b.WriteString(m.Content)
			b.WriteString("\n<|eot_id|>")
		case chat.RoleUser:
			b.WriteString("<|start_header_id|>user<|end_header_id|>\n")
			b.WriteString(m.Content)
			b.WriteString("\n<|eot_id|>")
		case chat.RoleAssistant:
			b.WriteString("<|start_header_id|>assistant<|end_header_id|>\n")
			b.WriteString(m.Content)
			b.WriteString("\n<|eot_id|>")
		}
	}
	b.WriteString("<|start_header_id|>assistant<|end_header_id|>\n")
	return b.String()
}
