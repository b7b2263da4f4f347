package summaryrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

type SummaryGormRepository struct {
	db *gorm.DB
}

var _ conversation.Repository = (*SummaryGormRepository)(nil)

func NewSummaryGormRepository(db *gorm.DB) conversation.Repository {
	return &SummaryGormRepository{db: db}
}

// Upsert inserts the summary, or on a (user_id, conversation_id) conflict
// replaces the stored text and message count and bumps updated_at in a single
// statement.
func (repo *SummaryGormRepository) Upsert(ctx context.Context, s *conversation.Summary) error {
	entity := dbschema.NewSchemaConversationSummary(s)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "conversation_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"summary":       entity.Summary,
				"message_count": entity.MessageCount,
				"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(entity).Error
	if err != nil {
		return fmt.Errorf("upsert conversation summary: %w", err)
	}
	return nil
}

func (repo *SummaryGormRepository) Get(ctx context.Context, userID, conversationID string) (*conversation.Summary, error) {
	var entity dbschema.ConversationSummary
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation summary: %w", err)
	}
	return entity.EtoD(), nil
}

func (repo *SummaryGormRepository) List(ctx context.Context, userID string) ([]conversation.Summary, error) {
	var entities []dbschema.ConversationSummary
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, fmt.Errorf("list conversation summaries: %w", err)
	}

	summaries := make([]conversation.Summary, 0, len(entities))
	for i := range entities {
		summaries = append(summaries, *entities[i].EtoD())
	}
	return summaries, nil
}

func (repo *SummaryGormRepository) Delete(ctx context.Context, userID, conversationID string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		Delete(&dbschema.ConversationSummary{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete conversation summary: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (repo *SummaryGormRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.ConversationSummary{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return 0, fmt.Errorf("count conversation summaries: %w", err)
	}
	return count, nil
}

func (repo *SummaryGormRepository) Stats(ctx context.Context, userID string) (*conversation.Stats, error) {
	var row struct {
		TotalConversations int64
		UniqueUsers        int64
		AvgMessageCount    *float64
		OldestConversation *time.Time
		NewestConversation *time.Time
	}
	query := repo.db.WithContext(ctx).
		Model(&dbschema.ConversationSummary{}).
		Select(`
			COUNT(*) as total_conversations,
			COUNT(DISTINCT user_id) as unique_users,
			AVG(message_count) as avg_message_count,
			MIN(created_at) as oldest_conversation,
			MAX(updated_at) as newest_conversation
		`)
	// An empty owner means the store-wide aggregate.
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("conversation summary stats: %w", err)
	}
	stats := &conversation.Stats{
		TotalConversations: row.TotalConversations,
		UniqueUsers:        row.UniqueUsers,
		OldestConversation: row.OldestConversation,
		NewestConversation: row.NewestConversation,
	}
	if row.AvgMessageCount != nil {
		stats.AvgMessageCount = *row.AvgMessageCount
	}
	return stats, nil
}

func (repo *SummaryGormRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&dbschema.ConversationSummary{})
	if result.Error != nil {
		return 0, fmt.Errorf("prune conversation summaries: %w", result.Error)
	}
	return result.RowsAffected, nil
}
