// Package conversation holds the conversation summary entity, its repository
// contract and the service exposing listing, retrieval, deletion and stats.
package conversation

import (
	"context"
	"time"
)

// Summary is one stored conversation summary row, scoped to its owner. At most
// one row exists per (UserID, ConversationID) pair; the store enforces it.
type Summary struct {
	ID             uint      `json:"-"`
	UserID         string    `json:"user_id"`
	ConversationID string    `json:"conversation_id"`
	Summary        string    `json:"summary"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Stats aggregates stored summaries. UniqueUsers and AvgMessageCount are only
// meaningful on the store-wide aggregate.
type Stats struct {
	TotalConversations int64      `json:"total_conversations"`
	UniqueUsers        int64      `json:"unique_users"`
	AvgMessageCount    float64    `json:"avg_message_count"`
	OldestConversation *time.Time `json:"oldest_conversation"`
	NewestConversation *time.Time `json:"newest_conversation"`
}

// Repository defines the interface for conversation summary data access.
// Lookups that find nothing return (nil, nil).
type Repository interface {
	// Upsert inserts the summary or, when the (user, conversation) pair
	// already exists, replaces the stored text and message count and bumps
	// updated_at.
	Upsert(ctx context.Context, s *Summary) error

	// Get retrieves one summary scoped to its owner.
	Get(ctx context.Context, userID, conversationID string) (*Summary, error)

	// List returns all summaries for a user, most recently updated first.
	List(ctx context.Context, userID string) ([]Summary, error)

	// Delete removes a summary scoped to its owner and reports how many
	// rows were removed.
	Delete(ctx context.Context, userID, conversationID string) (int64, error)

	// Count returns the number of summaries a user holds.
	Count(ctx context.Context, userID string) (int64, error)

	// Stats returns aggregate figures over a user's summaries.
	Stats(ctx context.Context, userID string) (*Stats, error)

	// PruneOlderThan removes every summary not updated since the cutoff,
	// across all users, and reports how many rows were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
