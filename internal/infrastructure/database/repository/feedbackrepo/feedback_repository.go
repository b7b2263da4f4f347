package feedbackrepo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"djigbo-server/internal/domain/feedback"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

type FeedbackGormRepository struct {
	db *gorm.DB
}

var _ feedback.Repository = (*FeedbackGormRepository)(nil)

func NewFeedbackGormRepository(db *gorm.DB) feedback.Repository {
	return &FeedbackGormRepository{db: db}
}

func (repo *FeedbackGormRepository) Create(ctx context.Context, e *feedback.Entry) error {
	entity := dbschema.NewSchemaFeedback(e)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	*e = *entity.EtoD()
	return nil
}

func (repo *FeedbackGormRepository) ListByUser(ctx context.Context, userID string) ([]feedback.Entry, error) {
	var entities []dbschema.Feedback
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, fmt.Errorf("list feedback by user: %w", err)
	}
	return toDomain(entities), nil
}

func (repo *FeedbackGormRepository) ListAll(ctx context.Context, limit int) ([]feedback.Entry, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entities []dbschema.Feedback
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list all feedback: %w", err)
	}
	return toDomain(entities), nil
}

func (repo *FeedbackGormRepository) Stats(ctx context.Context) (*feedback.Stats, error) {
	var row struct {
		TotalFeedback    int64
		UniqueUsers      int64
		LatestFeedback   *time.Time
		EarliestFeedback *time.Time
	}
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Feedback{}).
		Select(`
			COUNT(*) as total_feedback,
			COUNT(DISTINCT user_id) as unique_users,
			MAX(created_at) as latest_feedback,
			MIN(created_at) as earliest_feedback
		`).
		Scan(&row).
		Error
	if err != nil {
		return nil, fmt.Errorf("feedback stats: %w", err)
	}
	return &feedback.Stats{
		TotalFeedback:    row.TotalFeedback,
		UniqueUsers:      row.UniqueUsers,
		LatestFeedback:   row.LatestFeedback,
		EarliestFeedback: row.EarliestFeedback,
	}, nil
}

func toDomain(entities []dbschema.Feedback) []feedback.Entry {
	entries := make([]feedback.Entry, 0, len(entities))
	for i := range entities {
		entries = append(entries, *entities[i].EtoD())
	}
	return entries
}
