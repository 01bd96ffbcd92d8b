package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	WhopUserID   string     `gorm:"size:100;uniqueIndex;not null" json:"whopUserId"`
	Username     string     `gorm:"size:80;not null" json:"username"`
	Email        string     `gorm:"size:120;index" json:"email"`
	Role         UserRole   `gorm:"size:20;default:'member'" json:"role"`
	XP           int        `gorm:"default:0" json:"xp"`
	Level        int        `gorm:"default:0" json:"level"`
	Points       int        `gorm:"default:0" json:"points"`
	StreakCount  int        `gorm:"default:0" json:"streakCount"`
	LastActivity *time.Time `json:"lastActivity"`

	DailyProgress  []DailyProgress   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	WeeklyProgress []WeeklyProgress  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Achievements   []UserAchievement `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
