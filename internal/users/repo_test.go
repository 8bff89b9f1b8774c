package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  handle TEXT NOT NULL UNIQUE,
  auth_token TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersTable).Error)
	return db
}

func TestUpsertCreatesThenRefreshesToken(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "satoshi", "token-1")
	require.NoError(t, err)
	assert.Equal(t, "satoshi", created.Handle)
	assert.Equal(t, "token-1", created.AuthToken)

	updated, err := repo.Upsert(ctx, "satoshi", "token-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "re-login must not create a second row")
	assert.Equal(t, "token-2", updated.AuthToken)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindByHandleMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByHandle(context.Background(), "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClearAuthToken(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user, err := repo.Upsert(ctx, "satoshi", "token-1")
	require.NoError(t, err)

	require.NoError(t, repo.ClearAuthToken(ctx, user.ID))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.AuthToken)
}
