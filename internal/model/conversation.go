package model

import "time"

// Conversation 两人会话。参与者按规范序存储（user_a_id < user_b_id），
// 复合唯一键保证同一对用户至多一个会话，查找只需一次等值查询。
// idx_conversation_pair = (user_a_id, user_b_id)
type Conversation struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserAID   int64     `json:"userAId" gorm:"index:idx_conversation_pair,unique;not null"`
	UserBID   int64     `json:"userBId" gorm:"index:idx_conversation_pair,unique;index:idx_conversation_b;not null"`
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt 每发一条消息被 bump，收件箱按它倒序
	UpdatedAt time.Time `json:"updatedAt" gorm:"index"`
}

func (Conversation) TableName() string { return "conversations" }

// Other 返回会话里另一个参与者；userID 不在会话内时返回 false
func (c *Conversation) Other(userID int64) (int64, bool) {
	switch userID {
	case c.UserAID:
		return c.UserBID, true
	case c.UserBID:
		return c.UserAID, true
	default:
		return 0, false
	}
}

// Has 判断用户是否为会话参与者
func (c *Conversation) Has(userID int64) bool {
	return userID == c.UserAID || userID == c.UserBID
}

// CanonicalPair 把无序对归一为 (小, 大)
func CanonicalPair(u, v int64) (int64, int64) {
	if u > v {
		return v, u
	}
	return u, v
}
