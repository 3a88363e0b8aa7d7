package model

import "time"

// 通知类型常量
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// Notification 站内通知；由点赞/评论等写操作异步旁路产生
type Notification struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"userId" gorm:"index:idx_notification_user;not null"` // 接收人
	FromUserID int64     `json:"fromUserId" gorm:"not null"`
	FromUser   *User     `json:"fromUser,omitempty" gorm:"foreignKey:FromUserID"`
	Type       string    `json:"type" gorm:"type:varchar(16);index;not null"`
	PostID     *int64    `json:"postId"`
	Message    string    `json:"message" gorm:"type:text"`
	Read       bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
