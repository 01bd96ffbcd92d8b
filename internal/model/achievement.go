package model

import "time"

type RequirementType string

const (
	RequirementLevel  RequirementType = "level"
	RequirementXP     RequirementType = "xp"
	RequirementStreak RequirementType = "streak"
)

// Valid 是否为已知的解锁条件
func (t RequirementType) Valid() bool {
	switch t {
	case RequirementLevel, RequirementXP, RequirementStreak:
		return true
	}
	return false
}

// Achievement 成就目录，由管理员维护
// swagger:model Achievement
type Achievement struct {
	BaseModel
	Name             string          `gorm:"size:100;not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Icon             string          `gorm:"size:100" json:"icon"`
	XPReward         int             `gorm:"default:0" json:"xpReward"`
	PointsReward     int             `gorm:"default:0" json:"pointsReward"`
	RequirementType  RequirementType `gorm:"size:50" json:"requirementType"`
	RequirementValue int             `json:"requirementValue"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 解锁记录，(user_id, achievement_id) 唯一
// swagger:model UserAchievement
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint        `gorm:"not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint        `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
	UnlockedAt    time.Time   `gorm:"index" json:"unlockedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
