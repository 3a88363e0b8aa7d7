package model

import "time"

// Message 会话内消息。创建后除 seen 外不可变；seen 只能 false→true。
type Message struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ConversationID int64     `json:"conversationId" gorm:"index:idx_message_conv;not null"`
	SenderID       int64     `json:"senderId" gorm:"index;not null"`
	ReceiverID     int64     `json:"receiverId" gorm:"index:idx_message_recv_seen;not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Seen           bool      `json:"seen" gorm:"index:idx_message_recv_seen;not null;default:false"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index:idx_message_conv"`
}

func (Message) TableName() string { return "messages" }
