package moodrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"djigbo-server/internal/domain/mood"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

// campDashboardDays bounds the per-day dashboard series.
const campDashboardDays = 14

type MoodGormRepository struct {
	db *gorm.DB
}

var _ mood.Repository = (*MoodGormRepository)(nil)

func NewMoodGormRepository(db *gorm.DB) mood.Repository {
	return &MoodGormRepository{db: db}
}

func (repo *MoodGormRepository) Create(ctx context.Context, e *mood.Entry) error {
	entity := dbschema.NewSchemaMoodEntry(e)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	*e = *entity.EtoD()
	return nil
}

func (repo *MoodGormRepository) ListByUser(ctx context.Context, userID string, limit int) ([]mood.Entry, error) {
	var entities []dbschema.MoodEntry
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	entries := make([]mood.Entry, 0, len(entities))
	for i := range entities {
		entries = append(entries, *entities[i].EtoD())
	}
	return entries, nil
}

func (repo *MoodGormRepository) UserStats(ctx context.Context, userID string) (*mood.UserStats, error) {
	var stats mood.UserStats
	err := repo.db.WithContext(ctx).
		Model(&dbschema.MoodEntry{}).
		Select(`
			COUNT(*) as total_entries,
			AVG(mood_score) as avg_mood,
			MIN(mood_score) as min_mood,
			MAX(mood_score) as max_mood,
			COUNT(DISTINCT date(created_at)) as days_with_entries
		`).
		Where("user_id = ?", userID).
		Scan(&stats).
		Error
	if err != nil {
		return nil, fmt.Errorf("user mood stats: %w", err)
	}
	return &stats, nil
}

func (repo *MoodGormRepository) CampDaily(ctx context.Context, rng mood.DateRange) ([]mood.CampDay, error) {
	query := repo.db.WithContext(ctx).
		Model(&dbschema.MoodEntry{}).
		Select(`
			date(created_at) as date,
			AVG(mood_score) as avg_mood,
			COUNT(DISTINCT user_id) as participant_count,
			string_agg(DISTINCT thoughts, '; ') as thoughts
		`).
		Group("date(created_at)").
		Order("date DESC").
		Limit(campDashboardDays)
	if !rng.IsZero() {
		query = query.Where("date(created_at) BETWEEN ? AND ?", rng.Start, rng.End)
	}

	var days []mood.CampDay
	if err := query.Scan(&days).Error; err != nil {
		return nil, fmt.Errorf("camp mood data: %w", err)
	}
	return days, nil
}

func (repo *MoodGormRepository) TodayCamp(ctx context.Context) (*mood.TodayCamp, error) {
	var today mood.TodayCamp
	err := repo.db.WithContext(ctx).
		Model(&dbschema.MoodEntry{}).
		Select(`
			AVG(mood_score) as avg_mood,
			COUNT(DISTINCT user_id) as participant_count
		`).
		Where("date(created_at) = CURRENT_DATE").
		Scan(&today).
		Error
	if err != nil {
		return nil, fmt.Errorf("today's camp mood: %w", err)
	}
	return &today, nil
}

func (repo *MoodGormRepository) CampStats(ctx context.Context) (*mood.CampStats, error) {
	var stats mood.CampStats
	err := repo.db.WithContext(ctx).
		Model(&dbschema.MoodEntry{}).
		Select(`
			COUNT(DISTINCT user_id) as total_participants,
			AVG(mood_score) as overall_avg_mood,
			COUNT(*) as total_entries,
			COUNT(DISTINCT date(created_at)) as total_days
		`).
		Scan(&stats).
		Error
	if err != nil {
		return nil, fmt.Errorf("camp mood stats: %w", err)
	}
	return &stats, nil
}

func (repo *MoodGormRepository) ParticipantEntries(ctx context.Context, rng mood.DateRange) ([]mood.ParticipantEntry, error) {
	query := repo.db.WithContext(ctx).
		Table("mood_entries me").
		Select(`
			me.id,
			me.user_id,
			me.mood_score,
			me.thoughts,
			me.created_at,
			u.nickname,
			u.avatar
		`).
		Joins("LEFT JOIN users u ON me.user_id = u.auth0_user_id").
		Order("me.created_at DESC, u.nickname")
	if !rng.IsZero() {
		query = query.Where("date(me.created_at) BETWEEN ? AND ?", rng.Start, rng.End)
	}

	var entries []mood.ParticipantEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("participant mood entries: %w", err)
	}
	return entries, nil
}

// RollupDay recomputes the aggregate row for one calendar date and upserts it
// into mood_stats. A date with no entries yields no row.
func (repo *MoodGormRepository) RollupDay(ctx context.Context, date string) (*mood.DailyStat, error) {
	var agg struct {
		AvgMood          *float64
		ParticipantCount int64
		EntryCount       int64
		CommonThoughts   *string
	}
	err := repo.db.WithContext(ctx).
		Model(&dbschema.MoodEntry{}).
		Select(`
			AVG(mood_score) as avg_mood,
			COUNT(DISTINCT user_id) as participant_count,
			COUNT(*) as entry_count,
			string_agg(DISTINCT thoughts, '; ') as common_thoughts
		`).
		Where("date(created_at) = ?", date).
		Scan(&agg).
		Error
	if err != nil {
		return nil, fmt.Errorf("aggregate mood entries for %s: %w", date, err)
	}
	if agg.EntryCount == 0 || agg.AvgMood == nil {
		return nil, nil
	}

	entity := &dbschema.MoodDailyStat{
		Date:             date,
		AvgMood:          *agg.AvgMood,
		ParticipantCount: agg.ParticipantCount,
		EntryCount:       agg.EntryCount,
		CommonThoughts:   agg.CommonThoughts,
	}
	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"avg_mood":          entity.AvgMood,
				"participant_count": entity.ParticipantCount,
				"entry_count":       entity.EntryCount,
				"common_thoughts":   entity.CommonThoughts,
				"updated_at":        gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		return nil, fmt.Errorf("upsert daily mood stat: %w", err)
	}
	return entity.EtoD(), nil
}
