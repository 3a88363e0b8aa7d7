package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.UserProfile) error
	GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error)
	// Upsert 按 user_id 插入或更新展示字段
	Upsert(ctx context.Context, p *model.UserProfile) error
}

type profileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) Create(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "bio", "profile_image", "updated_at"}),
	}).Create(p).Error
}
