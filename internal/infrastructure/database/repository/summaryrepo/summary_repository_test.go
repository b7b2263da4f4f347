package summaryrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dbschema.ConversationSummary{}))
	return db
}

func TestUpsert_InsertThenUpdate(t *testing.T) {
	repo := NewSummaryGormRepository(newTestDB(t))
	ctx := context.Background()

	err := repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_1", Summary: "first", MessageCount: 1,
	})
	require.NoError(t, err)

	err = repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_1", Summary: "second", MessageCount: 3,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "auth0|u1", "conv_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Summary)
	assert.Equal(t, 3, got.MessageCount)

	count, err := repo.Count(ctx, "auth0|u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGet_ScopedToOwner(t *testing.T) {
	repo := NewSummaryGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_1", Summary: "mine",
	}))

	got, err := repo.Get(ctx, "auth0|u2", "conv_1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewSummaryGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_old", Summary: "old",
	}))
	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_new", Summary: "new",
	}))
	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u2", ConversationID: "conv_other", Summary: "other user",
	}))

	// Force distinct ordering timestamps.
	require.NoError(t, db.Model(&dbschema.ConversationSummary{}).
		Where("conversation_id = ?", "conv_old").
		Update("updated_at", time.Now().Add(-time.Hour)).Error)

	rows, err := repo.List(ctx, "auth0|u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "conv_new", rows[0].ConversationID)
	assert.Equal(t, "conv_old", rows[1].ConversationID)
}

func TestDelete_ReportsAffectedRows(t *testing.T) {
	repo := NewSummaryGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_1", Summary: "s",
	}))

	deleted, err := repo.Delete(ctx, "auth0|u1", "conv_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.Delete(ctx, "auth0|u1", "conv_1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestStats(t *testing.T) {
	repo := NewSummaryGormRepository(newTestDB(t))
	ctx := context.Background()

	stats, err := repo.Stats(ctx, "auth0|empty")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalConversations)

	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_1", Summary: "a", MessageCount: 2,
	}))
	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_2", Summary: "b", MessageCount: 4,
	}))
	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u2", ConversationID: "conv_3", Summary: "c", MessageCount: 6,
	}))

	stats, err = repo.Stats(ctx, "auth0|u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalConversations)
	assert.Equal(t, int64(1), stats.UniqueUsers)
	assert.InDelta(t, 3.0, stats.AvgMessageCount, 0.001)
	assert.NotNil(t, stats.OldestConversation)
	assert.NotNil(t, stats.NewestConversation)

	// Empty owner aggregates the whole store.
	global, err := repo.Stats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), global.TotalConversations)
	assert.Equal(t, int64(2), global.UniqueUsers)
	assert.InDelta(t, 4.0, global.AvgMessageCount, 0.001)
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	repo := NewSummaryGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_stale", Summary: "stale",
	}))
	require.NoError(t, repo.Upsert(ctx, &conversation.Summary{
		UserID: "auth0|u1", ConversationID: "conv_fresh", Summary: "fresh",
	}))

	require.NoError(t, db.Model(&dbschema.ConversationSummary{}).
		Where("conversation_id = ?", "conv_stale").
		Update("updated_at", time.Now().AddDate(0, 0, -45)).Error)

	deleted, err := repo.PruneOlderThan(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := repo.List(ctx, "auth0|u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "conv_fresh", remaining[0].ConversationID)
}
