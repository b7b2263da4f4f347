// Package chat holds the chat-turn model, the model-provider contract, the
// session-continuity resolver and the request orchestration service.
package chat

// MessageRole identifies who produced a chat turn.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single turn of a conversation transcript.
type Message struct {
	Role    MessageRole `json:"role" binding:"required,oneof=system user assistant"`
	Content string      `json:"content" binding:"required"`
}

// LastUserMessage returns the content of the most recent user turn, or ""
// when the transcript holds none.
func LastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// PreviousUserMessage returns the content of the user turn immediately before
// the most recent one, or "" when the transcript holds fewer than two.
func PreviousUserMessage(messages []Message) string {
	seen := false
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != RoleUser {
			continue
		}
		if seen {
			return messages[i].Content
		}
		seen = true
	}
	return ""
}
