package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Search 按邮箱/用户名子串模糊搜索，excludeID>0 时排除该用户
	Search(ctx context.Context, query string, excludeID int64, limit int) ([]*model.User, error)
	ListWithoutProfile(ctx context.Context) ([]*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) Search(ctx context.Context, query string, excludeID int64, limit int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.WithContext(ctx).Model(&model.User{}).Preload("Profile").
		Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("LOWER(users.email) LIKE ? OR LOWER(user_profiles.username) LIKE ?", pattern, pattern)
	if excludeID > 0 {
		q = q.Where("users.id <> ?", excludeID)
	}
	var res []*model.User
	err := q.Order("user_profiles.username ASC, users.email ASC").Limit(limit).Find(&res).Error
	return res, err
}

func (r *userRepository) ListWithoutProfile(ctx context.Context) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("user_profiles.id IS NULL").
		Find(&res).Error
	return res, err
}

// IsNotFound gorm 未命中判断的便捷包装
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
