package dbschema

import (
	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(ConversationSummary{})
}

// ConversationSummary persists one summary per (user, conversation) pair.
type ConversationSummary struct {
	BaseModel
	UserID         string `gorm:"type:varchar(255);not null;uniqueIndex:ux_conversation_summaries_user_conv"`
	ConversationID string `gorm:"type:varchar(255);not null;uniqueIndex:ux_conversation_summaries_user_conv"`
	Summary        string `gorm:"type:text;not null"`
	MessageCount   int    `gorm:"not null;default:0"`
}

func (ConversationSummary) TableName() string {
	return "conversation_summaries"
}

// NewSchemaConversationSummary converts a domain summary into a schema instance.
func NewSchemaConversationSummary(s *conversation.Summary) *ConversationSummary {
	if s == nil {
		return nil
	}
	return &ConversationSummary{
		BaseModel: BaseModel{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		},
		UserID:         s.UserID,
		ConversationID: s.ConversationID,
		Summary:        s.Summary,
		MessageCount:   s.MessageCount,
	}
}

// EtoD converts a schema row back to the domain representation.
func (s *ConversationSummary) EtoD() *conversation.Summary {
	if s == nil {
		return nil
	}
	return &conversation.Summary{
		ID:             s.ID,
		UserID:         s.UserID,
		ConversationID: s.ConversationID,
		Summary:        s.Summary,
		MessageCount:   s.MessageCount,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
