package mood

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"djigbo-server/internal/utils/apperr"
)

const defaultEntryLimit = 30

// Service exposes mood check-in and dashboard operations.
type Service struct {
	repo Repository
}

// NewService creates a mood service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckIn records a mood score with optional free-text thoughts.
func (s *Service) CheckIn(ctx context.Context, userID string, score int, thoughts *string) (*Entry, error) {
	if score < MinScore || score > MaxScore {
		return nil, apperr.Validation("moodScore must be between 1 and 5")
	}
	if thoughts != nil {
		trimmed := strings.TrimSpace(*thoughts)
		if trimmed == "" {
			thoughts = nil
		} else {
			thoughts = &trimmed
		}
	}

	e := &Entry{UserID: userID, MoodScore: score, Thoughts: thoughts}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperr.Internal("failed to save mood entry", err)
	}
	return e, nil
}

// History returns the caller's recent check-ins.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultEntryLimit
	}
	entries, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to list mood entries", err)
	}
	return entries, nil
}

// UserStats aggregates the caller's check-ins.
func (s *Service) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	stats, err := s.repo.UserStats(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to compute mood stats", err)
	}
	return stats, nil
}

// CampDaily returns the per-day camp dashboard series.
func (s *Service) CampDaily(ctx context.Context, rng DateRange) ([]CampDay, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	days, err := s.repo.CampDaily(ctx, rng)
	if err != nil {
		return nil, apperr.Internal("failed to load camp mood data", err)
	}
	return days, nil
}

// TodayCamp returns the current day's camp snapshot.
func (s *Service) TodayCamp(ctx context.Context) (*TodayCamp, error) {
	today, err := s.repo.TodayCamp(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to load today's camp mood", err)
	}
	return today, nil
}

// CampStats aggregates the whole mood table.
func (s *Service) CampStats(ctx context.Context) (*CampStats, error) {
	stats, err := s.repo.CampStats(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to compute camp mood stats", err)
	}
	return stats, nil
}

// ParticipantEntries returns check-ins with author profiles for staff review.
func (s *Service) ParticipantEntries(ctx context.Context, rng DateRange) ([]ParticipantEntry, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	entries, err := s.repo.ParticipantEntries(ctx, rng)
	if err != nil {
		return nil, apperr.Internal("failed to load participant mood entries", err)
	}
	return entries, nil
}

// ParticipantEntriesByDate groups staff-review check-ins by calendar date.
func (s *Service) ParticipantEntriesByDate(ctx context.Context, rng DateRange) (map[string][]ParticipantEntry, error) {
	entries, err := s.ParticipantEntries(ctx, rng)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]ParticipantEntry)
	for _, e := range entries {
		date := e.CreatedAt.Format("2006-01-02")
		grouped[date] = append(grouped[date], e)
	}
	return grouped, nil
}

// RollupYesterday recomputes the daily stat row for the previous calendar
// day. Run from the scheduler shortly after midnight.
func (s *Service) RollupYesterday(ctx context.Context) error {
	date := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	stat, err := s.repo.RollupDay(ctx, date)
	if err != nil {
		return apperr.Internal("failed to roll up daily mood stats", err)
	}
	if stat != nil {
		log.Info().Str("date", stat.Date).
			Int64("entries", stat.EntryCount).
			Int64("participants", stat.ParticipantCount).
			Msg("rolled up daily mood stats")
	}
	return nil
}

func validateRange(rng DateRange) error {
	if rng.IsZero() {
		return nil
	}
	if rng.Start == "" || rng.End == "" {
		return apperr.Validation("start_date and end_date must be provided together")
	}
	for _, d := range []string{rng.Start, rng.End} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return apperr.Validation("dates must be formatted as YYYY-MM-DD")
		}
	}
	if rng.Start > rng.End {
		return apperr.Validation("start_date must not be after end_date")
	}
	return nil
}
