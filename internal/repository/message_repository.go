package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

type MessageRepository interface {
	// CreateInConversation 同一事务内写入消息并 bump 会话 updated_at
	CreateInConversation(ctx context.Context, msg *model.Message) error
	// ListByConversation 全量历史，按创建时间升序
	ListByConversation(ctx context.Context, conversationID int64) ([]*model.Message, error)
	LatestByConversation(ctx context.Context, conversationID int64) (*model.Message, error)
	// MarkSeen 把会话内 receiver 的未读全部置已读；幂等
	MarkSeen(ctx context.Context, conversationID, receiverID int64) error
	CountUnseen(ctx context.Context, conversationID, receiverID int64) (int64, error)
	// LatestPerSender 收件箱视图：发给 userID 的消息按发送人去重取最新
	LatestPerSender(ctx context.Context, userID int64) ([]*model.Message, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

func (r *messageRepository) CreateInConversation(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *messageRepository) LatestByConversation(ctx context.Context, conversationID int64) (*model.Message, error) {
	var m model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) MarkSeen(ctx context.Context, conversationID, receiverID int64) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND seen = ?", conversationID, receiverID, false).
		Update("seen", true).Error
}

func (r *messageRepository) CountUnseen(ctx context.Context, conversationID, receiverID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND seen = ?", conversationID, receiverID, false).
		Count(&cnt).Error
	return cnt, err
}

func (r *messageRepository) LatestPerSender(ctx context.Context, userID int64) ([]*model.Message, error) {
	var res []*model.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", userID).
		Where(`id IN (SELECT MAX(id) FROM messages WHERE receiver_id = ? GROUP BY sender_id)`, userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
