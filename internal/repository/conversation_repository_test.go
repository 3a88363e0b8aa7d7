package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.UserProfile{},
		&model.Post{}, &model.Like{}, &model.Comment{},
		&model.Notification{},
		&model.Conversation{}, &model.Message{},
	))
	return db
}

func TestFindOrCreate_SymmetricPair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	c1, err := repo.FindOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	c2, err := repo.FindOrCreate(ctx, 2, 1)
	require.NoError(t, err)
	require.Equal(t, c1.ID, c2.ID)

	// 规范序存储：小 id 在前
	require.Equal(t, int64(1), c1.UserAID)
	require.Equal(t, int64(2), c1.UserBID)

	var cnt int64
	require.NoError(t, db.Model(&model.Conversation{}).Count(&cnt).Error)
	require.Equal(t, int64(1), cnt)
}

func TestFindOrCreate_DistinctPairs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	c12, err := repo.FindOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	c13, err := repo.FindOrCreate(ctx, 3, 1)
	require.NoError(t, err)
	require.NotEqual(t, c12.ID, c13.ID)
}

func TestListByUser_OnlyParticipants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	_, err := repo.FindOrCreate(ctx, 1, 2)
	require.NoError(t, err)
	_, err = repo.FindOrCreate(ctx, 2, 3)
	require.NoError(t, err)

	convs, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.True(t, convs[0].Has(1))

	convs, err = repo.ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	convs, err = repo.ListByUser(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, convs)
}
