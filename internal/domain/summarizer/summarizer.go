// Package summarizer condenses a conversation transcript into a short summary
// suitable for listing and continuity heuristics. Summarization is best-effort
// everywhere it is used; the package never returns an error to its callers.
package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"djigbo-server/internal/domain/chat"
	"djigbo-server/internal/infrastructure/metrics"
)

const (
	// DefaultMaxWords is the word target handed to the model prompt.
	DefaultMaxWords = 10

	// simpleTruncateAt caps the deterministic fallback summary length before
	// the ellipsis is appended.
	simpleTruncateAt = 100

	// emptyConversationSummary is used when the transcript carries no user
	// turn at all.
	emptyConversationSummary = "Conversation started"

	summaryMaxTokens = 150
	summaryTimeout   = 30 * time.Second
)

// Summarizer produces conversation summaries through a configured model
// provider, falling back to a deterministic truncation when the model is
// unavailable or fails.
type Summarizer struct {
	provider chat.ModelProvider
	maxWords int
}

// New builds a Summarizer. provider may be nil, in which case every call takes
// the deterministic fallback path.
func New(provider chat.ModelProvider, maxWords int) *Summarizer {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Summarizer{provider: provider, maxWords: maxWords}
}

// Summarize returns a short summary of the transcript. It never fails: any
// provider error is logged and replaced by SimpleSummary.
func (s *Summarizer) Summarize(ctx context.Context, messages []chat.Message) string {
	if s.provider == nil {
		return SimpleSummary(messages)
	}

	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	out, err := s.provider.Send(ctx, s.buildPrompt(messages), chat.SendOptions{MaxTokens: summaryMaxTokens})
	if err != nil {
		log.Warn().Err(err).
			Str("provider", string(s.provider.Kind())).
			Msg("summary generation failed, using simple fallback")
		metrics.SummaryFallbacksTotal.Inc()
		return SimpleSummary(messages)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		metrics.SummaryFallbacksTotal.Inc()
		return SimpleSummary(messages)
	}
	return out
}

func (s *Summarizer) buildPrompt(messages []chat.Message) []chat.Message {
	var transcript strings.Builder
	for _, m := range messages {
		transcript.WriteString(string(m.Role))
		transcript.WriteString(": ")
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}

	instruction := fmt.Sprintf(
		"You are an expert in the Big Five personality model. "+
			"Based on the following conversation, provide a concise summary of the user's "+
			"situation and emotional state in only %d words.\n\nConversation:\n%s\nSummary:",
		s.maxWords, transcript.String(),
	)

	return []chat.Message{{Role: chat.RoleUser, Content: instruction}}
}

// SimpleSummary is the deterministic fallback: the most recent user message
// truncated to 100 characters with an ellipsis appended when truncation
// occurred, or a fixed placeholder when no user turn exists.
func SimpleSummary(messages []chat.Message) string {
	last := chat.LastUserMessage(messages)
	if strings.TrimSpace(last) == "" {
		return emptyConversationSummary
	}
	runes := []rune(last)
	if len(runes) <= simpleTruncateAt {
		return last
	}
	return string(runes[:simpleTruncateAt]) + "..."
}
