package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"djigbo-server/internal/utils/apperr"
)

// Service exposes conversation summary operations to the HTTP layer and the
// chat orchestrator.
type Service struct {
	repo Repository
}

// NewService creates a conversation service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save upserts a summary for the given owner and conversation.
func (s *Service) Save(ctx context.Context, userID, conversationID, summary string, messageCount int) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.Validation("user id is required")
	}
	if strings.TrimSpace(conversationID) == "" {
		return apperr.Validation("conversation id is required")
	}
	if messageCount < 0 {
		messageCount = 0
	}
	row := &Summary{
		UserID:         userID,
		ConversationID: conversationID,
		Summary:        summary,
		MessageCount:   messageCount,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return apperr.Internal("failed to save conversation summary", err)
	}
	return nil
}

// Get returns one summary scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, conversationID string) (*Summary, error) {
	row, err := s.repo.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, apperr.Internal("failed to load conversation summary", err)
	}
	if row == nil {
		return nil, apperr.NotFound("conversation not found")
	}
	return row, nil
}

// List returns all of a user's summaries, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list conversation summaries", err)
	}
	return rows, nil
}

// Delete removes one summary scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID, conversationID string) error {
	deleted, err := s.repo.Delete(ctx, userID, conversationID)
	if err != nil {
		return apperr.Internal("failed to delete conversation summary", err)
	}
	if deleted == 0 {
		return apperr.NotFound("conversation not found")
	}
	return nil
}

// Stats returns aggregate figures over a user's summaries.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to compute conversation stats", err)
	}
	return stats, nil
}

// GlobalStats returns aggregate figures over every stored summary.
func (s *Service) GlobalStats(ctx context.Context) (*Stats, error) {
	return s.Stats(ctx, "")
}

// PruneOlderThan removes summaries not updated in the given number of days.
func (s *Service) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := s.repo.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperr.Internal("failed to prune conversation summaries", err)
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Int("retention_days", days).
			Msg("pruned stale conversation summaries")
	}
	return deleted, nil
}
