package model

import (
	"fmt"
	"time"
)

const (
	// DefaultProfileImage 未设置头像时的占位图
	DefaultProfileImage = "/globe.svg"
)

// UserProfile 用户展示资料，与 User 一对一
type UserProfile struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"userId" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"type:varchar(64);index"`
	Bio          *string   `json:"bio" gorm:"type:text"`
	ProfileImage string    `json:"profileImage" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// DefaultUsername 缺省用户名 Nuser<id>
func DefaultUsername(userID int64) string { return fmt.Sprintf("Nuser%d", userID) }

// Safe 组装安全视图；profile 可为 nil（未迁移的老用户）
func (u *User) Safe() SafeUser {
	s := SafeUser{ID: u.ID, Username: DefaultUsername(u.ID), ProfileImage: DefaultProfileImage}
	if u.Profile != nil {
		if u.Profile.Username != "" {
			s.Username = u.Profile.Username
		}
		if u.Profile.ProfileImage != "" {
			s.ProfileImage = u.Profile.ProfileImage
		}
	}
	return s
}
