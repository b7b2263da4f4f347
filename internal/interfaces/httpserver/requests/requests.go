// Package requests holds the bound JSON request bodies.
package requests

import "djigbo-server/internal/domain/chat"

// ChatRequest is one chat turn. The transcript is client-held and sent whole.
type ChatRequest struct {
	Messages               []chat.Message `json:"messages" binding:"required,min=1,dive"`
	MaxTokens              int            `json:"max_tokens" binding:"omitempty,gt=0"`
	ConversationID         string         `json:"conversation_id"`
	PreviousConversationID string         `json:"previous_conversation_id"`
}

// FeedbackRequest is one feedback submission.
type FeedbackRequest struct {
	FeedbackText string `json:"feedbackText" binding:"required"`
}

// ProfileRequest registers or updates the caller's profile.
type ProfileRequest struct {
	Nickname string  `json:"nickname" binding:"required"`
	Avatar   *string `json:"avatar"`
}

// MoodRequest is one mood check-in.
type MoodRequest struct {
	MoodScore int     `json:"moodScore" binding:"required"`
	Thoughts  *string `json:"thoughts"`
}
