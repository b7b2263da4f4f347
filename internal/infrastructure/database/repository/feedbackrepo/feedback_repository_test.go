package feedbackrepo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"djigbo-server/internal/domain/feedback"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dbschema.Feedback{}))
	return db
}

func TestCreateAndListByUser(t *testing.T) {
	repo := NewFeedbackGormRepository(newTestDB(t))
	ctx := context.Background()

	e := &feedback.Entry{UserID: "auth0|u1", FeedbackText: "Loved the evening activities"}
	require.NoError(t, repo.Create(ctx, e))
	assert.NotZero(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, &feedback.Entry{UserID: "auth0|u2", FeedbackText: "Food could be better"}))

	mine, err := repo.ListByUser(ctx, "auth0|u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Loved the evening activities", mine[0].FeedbackText)
}

func TestListAll_Limit(t *testing.T) {
	repo := NewFeedbackGormRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &feedback.Entry{
			UserID:       "auth0|u1",
			FeedbackText: fmt.Sprintf("note %d", i),
		}))
	}

	all, err := repo.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	limited, err := repo.ListAll(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestStats(t *testing.T) {
	repo := NewFeedbackGormRepository(newTestDB(t))
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalFeedback)

	require.NoError(t, repo.Create(ctx, &feedback.Entry{UserID: "auth0|u1", FeedbackText: "a"}))
	require.NoError(t, repo.Create(ctx, &feedback.Entry{UserID: "auth0|u1", FeedbackText: "b"}))
	require.NoError(t, repo.Create(ctx, &feedback.Entry{UserID: "auth0|u2", FeedbackText: "c"}))

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalFeedback)
	assert.Equal(t, int64(2), stats.UniqueUsers)
	assert.NotNil(t, stats.LatestFeedback)
	assert.NotNil(t, stats.EarliestFeedback)
}
