package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"djigbo-server/internal/domain/user"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&dbschema.User{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateAndGet(t *testing.T) {
	repo := NewUserGormRepository(newTestDB(t))
	ctx := context.Background()

	p := &user.Profile{Auth0UserID: "auth0|u1", Nickname: "Kofi"}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)

	got, err := repo.GetByAuth0ID(ctx, "auth0|u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kofi", got.Nickname)
	assert.Nil(t, got.Avatar)
}

func TestGet_MissingReturnsNil(t *testing.T) {
	repo := NewUserGormRepository(newTestDB(t))

	got, err := repo.GetByAuth0ID(context.Background(), "auth0|nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreate_DuplicateRejected(t *testing.T) {
	repo := NewUserGormRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.Profile{Auth0UserID: "auth0|u1", Nickname: "Kofi"}))
	err := repo.Create(ctx, &user.Profile{Auth0UserID: "auth0|u1", Nickname: "Imposter"})
	assert.ErrorIs(t, err, user.ErrAlreadyRegistered)
}

func TestUpdate(t *testing.T) {
	repo := NewUserGormRepository(newTestDB(t))
	ctx := context.Background()

	affected, err := repo.Update(ctx, "auth0|missing", "Ama", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	require.NoError(t, repo.Create(ctx, &user.Profile{Auth0UserID: "auth0|u1", Nickname: "Kofi"}))

	affected, err = repo.Update(ctx, "auth0|u1", "Ama", strPtr("data:image/png;base64,aGVsbG8="))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByAuth0ID(ctx, "auth0|u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ama", got.Nickname)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", *got.Avatar)
}
