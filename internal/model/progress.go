package model

// DailyProgress 每个用户每天一条，(user_id, day) 唯一
// swagger:model DailyProgress
type DailyProgress struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint   `gorm:"not null;uniqueIndex:idx_daily_user_day" json:"userId"`
	Day              string `gorm:"size:10;not null;uniqueIndex:idx_daily_user_day" json:"date"`
	Completed        bool   `gorm:"default:false" json:"completed"`
	StreakCount      int    `gorm:"default:0" json:"streakCount"`
	ActionsCompleted int    `gorm:"default:0" json:"actionsCompleted"`
	QuestsCompleted  int    `gorm:"default:0" json:"questsCompleted"`
}

func (DailyProgress) TableName() string {
	return "daily_progress"
}

// WeeklyProgress 以周日为一周起点
// swagger:model WeeklyProgress
type WeeklyProgress struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint   `gorm:"not null;uniqueIndex:idx_weekly_user_week" json:"userId"`
	WeekStart        string `gorm:"size:10;not null;uniqueIndex:idx_weekly_user_week" json:"weekStart"`
	Completed        bool   `gorm:"default:false" json:"completed"`
	ActionsCompleted int    `gorm:"default:0" json:"actionsCompleted"`
	QuestsCompleted  int    `gorm:"default:0" json:"questsCompleted"`
}

func (WeeklyProgress) TableName() string {
	return "weekly_progress"
}
