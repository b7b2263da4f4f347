package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"djigbo-server/internal/utils/apperr"
	"djigbo-server/internal/utils/idgen"
)

// Summarizer condenses a transcript into a short summary. Implementations
// never fail; a degraded summary is always returned.
type Summarizer interface {
	Summarize(ctx context.Context, messages []Message) string
}

// SummaryStore persists conversation summaries keyed by owner and
// conversation identifier.
type SummaryStore interface {
	Save(ctx context.Context, userID, conversationID, summary string, messageCount int) error
}

// Request is one chat turn submitted by an authenticated user. The transcript
// is client-held; the server only sees what the client sends.
type Request struct {
	Messages []Message
	// ConversationID pins the turn to an existing conversation. When set it
	// always wins over the continuity heuristic.
	ConversationID string
	// PreviousConversationID is the conversation the client last tracked,
	// offered to the continuity heuristic when ConversationID is empty.
	PreviousConversationID string
	// MaxTokens optionally caps the generated reply.
	MaxTokens int
}

// Response is the outcome of one orchestrated chat turn.
type Response struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
}

// Service orchestrates a chat turn: validate, resolve the conversation
// identifier, invoke the model, then summarize and persist on a best-effort
// basis. Model failure aborts the turn; summary or persistence failure never
// does.
type Service struct {
	registry   *ProviderRegistry
	resolver   *SessionResolver
	summarizer Summarizer
	store      SummaryStore
}

// NewService wires the chat orchestrator.
func NewService(registry *ProviderRegistry, resolver *SessionResolver, summarizer Summarizer, store SummaryStore) *Service {
	return &Service{
		registry:   registry,
		resolver:   resolver,
		summarizer: summarizer,
		store:      store,
	}
}

// Complete runs one chat turn for the given user against the named provider.
func (s *Service) Complete(ctx context.Context, userID string, kind ProviderKind, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	provider, err := s.registry.Get(kind)
	if err != nil {
		// A provider the deployment never configured is a backend outage from
		// the caller's point of view, not a bad request.
		return nil, apperr.Upstream("requested model provider is not available", err)
	}

	conversationID := s.resolveConversationID(req)

	content, err := provider.Send(ctx, req.Messages, SendOptions{MaxTokens: req.MaxTokens})
	if err != nil {
		return nil, apperr.Upstream("model invocation failed", err)
	}

	s.persistSummary(ctx, userID, conversationID, req.Messages, content)

	return &Response{Content: content, ConversationID: conversationID}, nil
}

func validateRequest(req Request) error {
	if len(req.Messages) == 0 {
		return apperr.Validation("messages must not be empty")
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return apperr.Validation("message role must be system, user or assistant")
		}
		if strings.TrimSpace(m.Content) == "" {
			return apperr.Validation("message content must not be empty")
		}
	}
	// Conversation identifiers are always server-minted; anything that does
	// not look like one is a client bug.
	if req.ConversationID != "" && !idgen.ValidateIDFormat(req.ConversationID, "conv") {
		return apperr.Validation("conversation_id is not a valid conversation identifier")
	}
	if req.PreviousConversationID != "" && !idgen.ValidateIDFormat(req.PreviousConversationID, "conv") {
		return apperr.Validation("previous_conversation_id is not a valid conversation identifier")
	}
	return nil
}

// resolveConversationID picks the identifier this turn belongs to. An explicit
// identifier always wins; otherwise the continuity heuristic may carry over
// the previously tracked one; otherwise a fresh identifier is minted.
func (s *Service) resolveConversationID(req Request) string {
	if req.ConversationID != "" {
		return req.ConversationID
	}
	if req.PreviousConversationID != "" {
		continued := s.resolver.Resolve(
			req.PreviousConversationID,
			PreviousUserMessage(req.Messages),
			LastUserMessage(req.Messages),
		)
		if continued != "" {
			return continued
		}
	}
	return idgen.NewConversationID()
}

// persistSummary summarizes the turn and stores the result. Both steps are
// best-effort: failures are logged and the turn still succeeds.
func (s *Service) persistSummary(ctx context.Context, userID, conversationID string, messages []Message, reply string) {
	transcript := append(append([]Message{}, messages...), Message{Role: RoleAssistant, Content: reply})
	summary := s.summarizer.Summarize(ctx, transcript)

	if err := s.store.Save(ctx, userID, conversationID, summary, len(messages)); err != nil {
		log.Warn().Err(err).
			Str("user_id", userID).
			Str("conversation_id", conversationID).
			Msg("failed to persist conversation summary")
	}
}
