package model

import "time"

// User 账号主体；展示字段放在 UserProfile
type User struct {
	ID        int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string       `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string       `json:"-" gorm:"type:varchar(100);not null"` // bcrypt hash
	Profile   *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// SafeUser 对外安全视图（去掉邮箱/密码），展示字段带默认值
type SafeUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}
