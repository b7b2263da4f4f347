// Package mood tracks daily mood check-ins and the camp-wide dashboard built
// on top of them.
package mood

import (
	"context"
	"time"
)

// Score bounds for a mood check-in.
const (
	MinScore = 1
	MaxScore = 5
)

// Entry is one mood check-in. Thoughts is optional free text.
type Entry struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	MoodScore int       `json:"mood_score"`
	Thoughts  *string   `json:"thoughts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats aggregates one user's check-ins.
type UserStats struct {
	TotalEntries    int64    `json:"total_entries"`
	AvgMood         *float64 `json:"avg_mood"`
	MinMood         *int     `json:"min_mood"`
	MaxMood         *int     `json:"max_mood"`
	DaysWithEntries int64    `json:"days_with_entries"`
}

// CampDay is one day of the camp-wide mood dashboard.
type CampDay struct {
	Date             string   `json:"date"`
	AvgMood          *float64 `json:"avg_mood"`
	ParticipantCount int64    `json:"participant_count"`
	Thoughts         *string  `json:"thoughts"`
}

// TodayCamp is the current day's camp-wide snapshot.
type TodayCamp struct {
	AvgMood          *float64 `json:"avg_mood"`
	ParticipantCount int64    `json:"participant_count"`
}

// CampStats aggregates the whole mood table.
type CampStats struct {
	TotalParticipants int64    `json:"total_participants"`
	OverallAvgMood    *float64 `json:"overall_avg_mood"`
	TotalEntries      int64    `json:"total_entries"`
	TotalDays         int64    `json:"total_days"`
}

// ParticipantEntry is a check-in joined with the author's public profile.
type ParticipantEntry struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	MoodScore int       `json:"mood_score"`
	Thoughts  *string   `json:"thoughts"`
	CreatedAt time.Time `json:"created_at"`
	Nickname  *string   `json:"nickname"`
	Avatar    *string   `json:"avatar"`
}

// DailyStat is one day's aggregate in the mood_stats table, recomputed by the
// nightly rollup job. Raw entries stay authoritative; the dashboard aggregates
// them directly and the rollup keeps a compact per-day history.
type DailyStat struct {
	ID               uint      `json:"-"`
	Date             string    `json:"date"`
	AvgMood          float64   `json:"avg_mood"`
	ParticipantCount int64     `json:"participant_count"`
	EntryCount       int64     `json:"entry_count"`
	CommonThoughts   *string   `json:"common_thoughts"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// DateRange optionally bounds a dashboard query by calendar date, inclusive.
// Dates are "YYYY-MM-DD" strings; both must be set or both empty.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether no range was requested.
func (r DateRange) IsZero() bool { return r.Start == "" && r.End == "" }

// Repository defines the interface for mood data access.
type Repository interface {
	Create(ctx context.Context, e *Entry) error

	// ListByUser returns a user's check-ins, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)

	UserStats(ctx context.Context, userID string) (*UserStats, error)

	// CampDaily returns per-day camp aggregates, newest day first, at most
	// 14 days.
	CampDaily(ctx context.Context, rng DateRange) ([]CampDay, error)

	TodayCamp(ctx context.Context) (*TodayCamp, error)

	CampStats(ctx context.Context) (*CampStats, error)

	// ParticipantEntries returns check-ins joined with public profiles,
	// newest first.
	ParticipantEntries(ctx context.Context, rng DateRange) ([]ParticipantEntry, error)

	// RollupDay recomputes and upserts the daily stat row for the given
	// calendar date.
	RollupDay(ctx context.Context, date string) (*DailyStat, error)
}
