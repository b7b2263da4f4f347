package feedback

import (
	"context"
	"strings"

	"djigbo-server/internal/utils/apperr"
)

// MaxFeedbackLength bounds a single feedback submission.
const MaxFeedbackLength = 10000

// Service exposes feedback operations.
type Service struct {
	repo Repository
}

// NewService creates a feedback service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a new feedback entry for the given user.
func (s *Service) Submit(ctx context.Context, userID, text string) (*Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("feedback text is required")
	}
	if len(text) > MaxFeedbackLength {
		return nil, apperr.Validation("feedback text is too long")
	}

	e := &Entry{UserID: userID, FeedbackText: text}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperr.Internal("failed to save feedback", err)
	}
	return e, nil
}

// ListForUser returns the caller's own feedback, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list feedback", err)
	}
	return entries, nil
}

// ListAll returns feedback across all users for staff review.
func (s *Service) ListAll(ctx context.Context, limit int) ([]Entry, error) {
	entries, err := s.repo.ListAll(ctx, limit)
	if err != nil {
		return nil, apperr.Internal("failed to list feedback", err)
	}
	return entries, nil
}

// Stats returns aggregate feedback figures.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to compute feedback stats", err)
	}
	return stats, nil
}
