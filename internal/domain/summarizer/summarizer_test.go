package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"djigbo-server/internal/domain/chat"
)

type stubProvider struct {
	reply string
	err   error
	calls int
	last  []chat.Message
}

func (s *stubProvider) Kind() chat.ProviderKind { return chat.ProviderOllama }

func (s *stubProvider) Send(_ context.Context, messages []chat.Message, _ chat.SendOptions) (string, error) {
	s.calls++
	s.last = messages
	return s.reply, s.err
}

func TestSimpleSummary(t *testing.T) {
	t.Run("short message kept verbatim", func(t *testing.T) {
		got := SimpleSummary([]chat.Message{{Role: chat.RoleUser, Content: "I feel overwhelmed"}})
		assert.Equal(t, "I feel overwhelmed", got)
	})

	t.Run("long message truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("a", 150)
		got := SimpleSummary([]chat.Message{{Role: chat.RoleUser, Content: long}})
		assert.Equal(t, strings.Repeat("a", 100)+"...", got)
		assert.Len(t, got, 103)
	})

	t.Run("exactly 100 chars not truncated", func(t *testing.T) {
		msg := strings.Repeat("b", 100)
		got := SimpleSummary([]chat.Message{{Role: chat.RoleUser, Content: msg}})
		assert.Equal(t, msg, got)
	})

	t.Run("no user turn yields placeholder", func(t *testing.T) {
		got := SimpleSummary([]chat.Message{{Role: chat.RoleAssistant, Content: "Hi!"}})
		assert.Equal(t, "Conversation started", got)
	})

	t.Run("empty transcript yields placeholder", func(t *testing.T) {
		assert.Equal(t, "Conversation started", SimpleSummary(nil))
	})

	t.Run("picks most recent user turn", func(t *testing.T) {
		got := SimpleSummary([]chat.Message{
			{Role: chat.RoleUser, Content: "first"},
			{Role: chat.RoleAssistant, Content: "reply"},
			{Role: chat.RoleUser, Content: "second"},
		})
		assert.Equal(t, "second", got)
	})
}

func TestSummarizer_Summarize(t *testing.T) {
	messages := []chat.Message{{Role: chat.RoleUser, Content: "I had a rough day at camp"}}

	t.Run("uses provider output", func(t *testing.T) {
		p := &stubProvider{reply: "  User reflecting on a difficult day at camp.  "}
		s := New(p, 10)
		got := s.Summarize(context.Background(), messages)
		assert.Equal(t, "User reflecting on a difficult day at camp.", got)
		assert.Equal(t, 1, p.calls)
	})

	t.Run("falls back on provider error", func(t *testing.T) {
		p := &stubProvider{err: errors.New("boom")}
		s := New(p, 10)
		got := s.Summarize(context.Background(), messages)
		assert.Equal(t, "I had a rough day at camp", got)
	})

	t.Run("falls back on empty provider output", func(t *testing.T) {
		p := &stubProvider{reply: "   "}
		s := New(p, 10)
		got := s.Summarize(context.Background(), messages)
		assert.Equal(t, "I had a rough day at camp", got)
	})

	t.Run("nil provider goes straight to fallback", func(t *testing.T) {
		s := New(nil, 10)
		got := s.Summarize(context.Background(), messages)
		assert.Equal(t, "I had a rough day at camp", got)
	})

	t.Run("prompt embeds transcript and word target", func(t *testing.T) {
		p := &stubProvider{reply: "ok"}
		s := New(p, 12)
		s.Summarize(context.Background(), messages)
		if assert.Len(t, p.last, 1) {
			assert.Contains(t, p.last[0].Content, "user: I had a rough day at camp")
			assert.Contains(t, p.last[0].Content, "only 12 words")
		}
	})
}
