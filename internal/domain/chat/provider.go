package chat

import (
	"context"
	"errors"
	"fmt"
)

// ProviderKind names a concrete model backend.
type ProviderKind string

const (
	// ProviderBedrock is the managed cloud model API.
	ProviderBedrock ProviderKind = "bedrock"
	// ProviderOllama is the local inference server.
	ProviderOllama ProviderKind = "ollama"
	// ProviderTogether is the hosted open-weights API.
	ProviderTogether ProviderKind = "together"
	// ProviderSimple is not a real backend; it selects the deterministic
	// summarization fallback.
	ProviderSimple ProviderKind = "simple"
)

// ParseProviderKind validates a configured provider name.
func ParseProviderKind(raw string) (ProviderKind, error) {
	switch ProviderKind(raw) {
	case ProviderBedrock, ProviderOllama, ProviderTogether, ProviderSimple:
		return ProviderKind(raw), nil
	default:
		return "", fmt.Errorf("unknown model provider %q", raw)
	}
}

// DefaultMaxTokens bounds the generated output when the caller does not ask
// for a specific budget.
const DefaultMaxTokens = 1024

// SendOptions carries per-request generation options. Sampling parameters are
// fixed per adapter and deliberately absent here.
type SendOptions struct {
	MaxTokens int
}

// EffectiveMaxTokens resolves the output budget, applying the default.
func (o SendOptions) EffectiveMaxTokens() int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return DefaultMaxTokens
}

// ModelProvider is the uniform contract every model backend implements.
// Implementations are stateless and safe for concurrent use; each owns its
// wire format and normalizes backend failures into errors. A non-success
// backend response is always an error, never silently empty text.
type ModelProvider interface {
	Kind() ProviderKind
	Send(ctx context.Context, messages []Message, opts SendOptions) (string, error)
}

// ErrProviderNotConfigured reports a selector naming a backend the deployment
// did not configure.
var ErrProviderNotConfigured = errors.New("model provider not configured")

// ProviderRegistry resolves a ProviderKind to its configured adapter.
type ProviderRegistry struct {
	providers map[ProviderKind]ModelProvider
}

// NewProviderRegistry builds a registry from the configured adapters.
func NewProviderRegistry(providers ...ModelProvider) *ProviderRegistry {
	reg := &ProviderRegistry{providers: make(map[ProviderKind]ModelProvider, len(providers))}
	for _, p := range providers {
		reg.providers[p.Kind()] = p
	}
	return reg
}

// Get returns the adapter registered for kind.
func (r *ProviderRegistry) Get(kind ProviderKind) (ModelProvider, error) {
	p, ok := r.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, kind)
	}
	return p, nil
}
