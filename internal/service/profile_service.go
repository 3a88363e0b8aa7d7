package service

import (
	"context"
	"strings"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

// ProfileView 对外资料视图
type ProfileView struct {
	ID      int64              `json:"id"`
	Email   string             `json:"email"`
	Profile *model.UserProfile `json:"profile"`
}

type ProfileService interface {
	// Get 读取资料；无资料的老用户顺手补建默认资料（懒迁移）
	Get(ctx context.Context, userID int64) (*ProfileView, error)
	Update(ctx context.Context, userID int64, username, profileImage *string, bio *string) (*ProfileView, error)
	Search(ctx context.Context, query string, excludeID int64) ([]model.SafeUser, error)
	// MigrateAll 为所有缺资料的用户批量补默认资料，返回补建数量
	MigrateAll(ctx context.Context) (int, error)
	// SafeUser 聊天/帖子等处使用的安全视图
	SafeUser(ctx context.Context, userID int64) (model.SafeUser, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{userRepo: userRepo, profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*ProfileView, error) {
	if userID <= 0 {
		return nil, errs.InvalidArg("user id is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, "load user", err)
	}
	if user.Profile == nil {
		p := &model.UserProfile{
			UserID:       user.ID,
			Username:     model.DefaultUsername(user.ID),
			ProfileImage: model.DefaultProfileImage,
		}
		if err := s.profileRepo.Create(ctx, p); err != nil {
			return nil, errs.Wrap(errs.CodeInternal, "create default profile", err)
		}
		user.Profile = p
	}
	return &ProfileView{ID: user.ID, Email: user.Email, Profile: user.Profile}, nil
}

func (s *profileService) Update(ctx context.Context, userID int64, username, profileImage *string, bio *string) (*ProfileView, error) {
	if userID <= 0 {
		return nil, errs.InvalidArg("user id is required")
	}
	// 先保证有资料行（懒迁移同 Get）
	view, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := view.Profile
	if username != nil && strings.TrimSpace(*username) != "" {
		p.Username = strings.TrimSpace(*username)
	}
	if profileImage != nil && *profileImage != "" {
		p.ProfileImage = *profileImage
	}
	if bio != nil {
		p.Bio = bio
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "update profile", err)
	}
	return s.Get(ctx, userID)
}

func (s *profileService) Search(ctx context.Context, query string, excludeID int64) ([]model.SafeUser, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.InvalidArg("query parameter is required")
	}
	users, err := s.userRepo.Search(ctx, query, excludeID, 10)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "search users", err)
	}
	out := make([]model.SafeUser, len(users))
	for i, u := range users {
		out[i] = u.Safe()
	}
	return out, nil
}

func (s *profileService) MigrateAll(ctx context.Context) (int, error) {
	users, err := s.userRepo.ListWithoutProfile(ctx)
	if err != nil {
		return 0, errs.Wrap(errs.CodeInternal, "list users without profile", err)
	}
	created := 0
	for _, u := range users {
		p := &model.UserProfile{
			UserID:       u.ID,
			Username:     model.DefaultUsername(u.ID),
			ProfileImage: model.DefaultProfileImage,
		}
		if err := s.profileRepo.Create(ctx, p); err != nil {
			return created, errs.Wrap(errs.CodeInternal, "create default profile", err)
		}
		created++
	}
	return created, nil
}

func (s *profileService) SafeUser(ctx context.Context, userID int64) (model.SafeUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return model.SafeUser{}, errs.NotFound("user not found")
		}
		return model.SafeUser{}, errs.Wrap(errs.CodeInternal, "load user", err)
	}
	return user.Safe(), nil
}
