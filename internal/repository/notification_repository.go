package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
)

// NotificationCounts 未读统计
type NotificationCounts struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"byType"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListByUser 某用户的通知倒序；typ 为空或 "all" 时不过滤
	ListByUser(ctx context.Context, userID int64, typ string) ([]*model.Notification, error)
	// MarkRead 仅允许本人把自己的通知置已读
	MarkRead(ctx context.Context, userID int64, ids []int64) error
	UnreadCounts(ctx context.Context, userID int64) (*NotificationCounts, error)
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, typ string) ([]*model.Notification, error) {
	q := r.db.WithContext(ctx).Preload("FromUser.Profile").Where("user_id = ?", userID)
	if typ != "" && typ != "all" {
		q = q.Where("type = ?", typ)
	}
	var res []*model.Notification
	err := q.Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("read", true).Error
}

func (r *notificationRepository) UnreadCounts(ctx context.Context, userID int64) (*NotificationCounts, error) {
	type row struct {
		Type string
		Cnt  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Select("type, COUNT(*) AS cnt").
		Where("user_id = ? AND read = ?", userID, false).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := &NotificationCounts{ByType: make(map[string]int64)}
	for _, r := range rows {
		out.ByType[r.Type] = r.Cnt
		out.Total += r.Cnt
	}
	return out, nil
}
