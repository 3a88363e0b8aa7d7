package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

func TestProfileGet_LazyDefaultCreation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewProfileRepository(db))
	ctx := context.Background()

	// 老用户：只有 users 行，没有资料
	u := seedUser(t, db, "old@example.com")

	view, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Profile)
	require.Equal(t, fmt.Sprintf("Nuser%d", u.ID), view.Profile.Username)
	require.Equal(t, model.DefaultProfileImage, view.Profile.ProfileImage)

	// 资料已持久化，二次读取同一行
	var cnt int64
	require.NoError(t, db.Model(&model.UserProfile{}).Count(&cnt).Error)
	require.Equal(t, int64(1), cnt)

	again, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, view.Profile.ID, again.Profile.ID)
}

func TestProfileGet_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewProfileRepository(db))

	_, err := svc.Get(context.Background(), 12345)
	require.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
}

func TestProfileUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewProfileRepository(db))
	ctx := context.Background()

	u := seedUser(t, db, "u@example.com")
	name := "alice"
	bio := "hello there"
	view, err := svc.Update(ctx, u.ID, &name, nil, &bio)
	require.NoError(t, err)
	require.Equal(t, "alice", view.Profile.Username)
	require.NotNil(t, view.Profile.Bio)
	require.Equal(t, "hello there", *view.Profile.Bio)
	// 未传头像保持默认
	require.Equal(t, model.DefaultProfileImage, view.Profile.ProfileImage)
}

func TestProfileSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewProfileRepository(db))
	ctx := context.Background()

	u1 := seedUser(t, db, "alice@example.com")
	u2 := seedUser(t, db, "bob@example.com")
	require.NoError(t, db.Create(&model.UserProfile{UserID: u2.ID, Username: "bobby"}).Error)

	res, err := svc.Search(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, u1.ID, res[0].ID)

	// 用户名命中
	res, err = svc.Search(ctx, "BOBB", 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "bobby", res[0].Username)

	// 排除自己
	res, err = svc.Search(ctx, "example.com", u1.ID)
	require.NoError(t, err)
	for _, r := range res {
		require.NotEqual(t, u1.ID, r.ID)
	}

	_, err = svc.Search(ctx, "   ", 0)
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
}

func TestMigrateAll(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(repository.NewUserRepository(db), repository.NewProfileRepository(db))
	ctx := context.Background()

	seedUser(t, db, "a@example.com")
	seedUser(t, db, "b@example.com")
	withProfile := seedUser(t, db, "c@example.com")
	require.NoError(t, db.Create(&model.UserProfile{UserID: withProfile.ID, Username: "charlie"}).Error)

	created, err := svc.MigrateAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	// 再跑一遍没有可迁移的
	created, err = svc.MigrateAll(ctx)
	require.NoError(t, err)
	require.Zero(t, created)
}
