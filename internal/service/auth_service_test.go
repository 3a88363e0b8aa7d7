package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

const testSecret = "test-secret-0123456789abcdef"

func newAuthService(t *testing.T) (AuthService, func() int64) {
	db := setupTestDB(t)
	svc := NewAuthService(db, repository.NewUserRepository(db), testSecret, time.Hour)
	countUsers := func() int64 {
		var cnt int64
		require.NoError(t, db.Model(&model.User{}).Count(&cnt).Error)
		return cnt
	}
	return svc, countUsers
}

func TestRegister_CreatesUserWithDefaultProfile(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "secret1", user.Password) // 存的是 hash
	require.NotNil(t, user.Profile)
	require.Equal(t, model.DefaultUsername(user.ID), user.Profile.Username)
	require.Equal(t, model.DefaultProfileImage, user.Profile.ProfileImage)
}

func TestRegister_Validation(t *testing.T) {
	svc, countUsers := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "secret1", "mismatch")
	require.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))

	_, err = svc.Register(ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "a@example.com", "other", "other")
	require.Equal(t, errs.CodeAlreadyExists, errs.CodeOf(err))

	require.Equal(t, int64(1), countUsers())
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, result.User.ID)
	require.NotEmpty(t, result.Token)

	uid, err := svc.ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
}

func TestLogin_FieldErrors(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "secret1", "secret1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "missing@example.com", "secret1")
	require.Error(t, err)
	fe, ok := err.(*FieldError)
	require.True(t, ok)
	require.Equal(t, "email", fe.Field)
	require.Equal(t, errs.CodeUnauthenticated, errs.CodeOf(err))

	_, err = svc.Login(ctx, "a@example.com", "wrong")
	require.Error(t, err)
	fe, ok = err.(*FieldError)
	require.True(t, ok)
	require.Equal(t, "password", fe.Field)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.ParseToken("not-a-jwt")
	require.Error(t, err)
	require.Equal(t, errs.CodeUnauthenticated, errs.CodeOf(err))
}
