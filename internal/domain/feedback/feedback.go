// Package feedback stores free-form user feedback and exposes aggregate
// figures for camp staff.
package feedback

import (
	"context"
	"time"
)

// Entry is one piece of feedback left by a user.
type Entry struct {
	ID           uint      `json:"id"`
	UserID       string    `json:"user_id"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats aggregates the feedback table.
type Stats struct {
	TotalFeedback    int64      `json:"total_feedback"`
	UniqueUsers      int64      `json:"unique_users"`
	LatestFeedback   *time.Time `json:"latest_feedback"`
	EarliestFeedback *time.Time `json:"earliest_feedback"`
}

// Repository defines the interface for feedback data access.
type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// ListByUser returns a user's feedback, newest first.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// ListAll returns feedback across all users, newest first. A
	// non-positive limit returns everything.
	ListAll(ctx context.Context, limit int) ([]Entry, error)

	Stats(ctx context.Context) (*Stats, error)
}
