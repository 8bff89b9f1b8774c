package items

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupItemsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	itemsTable := `
CREATE TABLE IF NOT EXISTS items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  collection_id TEXT NOT NULL,
  handcash_item_id TEXT NOT NULL UNIQUE,
  origin TEXT,
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT NOT NULL,
  token_supply INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(itemsTable).Error)
	return db
}

func TestCreateAndListByUser(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUserID := uuid.New()
	collectionID := uuid.New()
	origin := "txid_1"

	_, err := repo.Create(ctx, CreateDTO{
		UserID:         userID,
		CollectionID:   collectionID,
		HandcashItemID: "item_1",
		Origin:         &origin,
		Name:           "Golden Pepe",
		ImageURL:       "https://img.example/1.png",
		TokenSupply:    5,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateDTO{
		UserID:         otherUserID,
		CollectionID:   collectionID,
		HandcashItemID: "item_2",
		Name:           "Silver Pepe",
		ImageURL:       "https://img.example/2.png",
		TokenSupply:    1,
	})
	require.NoError(t, err)

	mine, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "item_1", mine[0].HandcashItemID)
	require.NotNil(t, mine[0].Origin)
	assert.Equal(t, "txid_1", *mine[0].Origin)
	assert.Equal(t, 5, mine[0].TokenSupply)
}

func TestDuplicateHandcashItemIDRejected(t *testing.T) {
	db := setupItemsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dto := CreateDTO{
		UserID:         uuid.New(),
		CollectionID:   uuid.New(),
		HandcashItemID: "item_dup",
		Name:           "Pepe",
		ImageURL:       "https://img.example/d.png",
		TokenSupply:    1,
	}
	_, err := repo.Create(ctx, dto)
	require.NoError(t, err)
	_, err = repo.Create(ctx, dto)
	assert.Error(t, err)
}
