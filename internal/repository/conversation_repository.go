package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

type ConversationRepository interface {
	// FindOrCreate 按无序对查找会话，不存在则创建。
	// 调用方保证 userA != userB；并发首次互发由唯一键兜底。
	FindOrCreate(ctx context.Context, userA, userB int64) (*model.Conversation, error)
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	// ListByUser 某用户参与的全部会话，按最近活跃倒序
	ListByUser(ctx context.Context, userID int64) ([]*model.Conversation, error)
}

type conversationRepository struct{ db *gorm.DB }

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindOrCreate(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	a, b := model.CanonicalPair(userA, userB)

	var conv model.Conversation
	err := r.db.WithContext(ctx).Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	// 并发下两个请求可能同时走到这里：冲突即忽略，随后重读必命中
	create := &model.Conversation{UserAID: a, UserBID: b}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(create).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("user_a_id = ? AND user_b_id = ?", a, b).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Conversation, error) {
	var res []*model.Conversation
	err := r.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&res).Error
	return res, err
}
