package service

import (
	"gamify_backend/internal/config"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/util"
	"strings"
)

// ActionKind 经验来源。未知取值照常发放经验，但不计入任何进度计数。
type ActionKind string

const (
	ActionKindAction ActionKind = "action"
	ActionKindQuest  ActionKind = "quest"
)

// QuestKind 只允许 daily / weekly
type QuestKind string

const (
	QuestDaily  QuestKind = "daily"
	QuestWeekly QuestKind = "weekly"
)

func ParseQuestKind(s string) (QuestKind, error) {
	switch QuestKind(strings.TrimSpace(s)) {
	case QuestDaily:
		return QuestDaily, nil
	case QuestWeekly:
		return QuestWeekly, nil
	}
	return "", util.ErrInvalidQuestKind
}

// QuestReward 完成一次任务获得的经验与积分
type QuestReward struct {
	XP     int
	Points int
}

func questReward(cfg config.GamificationConfig, kind QuestKind) (QuestReward, error) {
	switch kind {
	case QuestDaily:
		return QuestReward{XP: cfg.DailyQuestXP, Points: cfg.DailyQuestPoints}, nil
	case QuestWeekly:
		return QuestReward{XP: cfg.WeeklyQuestXP, Points: cfg.WeeklyQuestPoints}, nil
	}
	return QuestReward{}, util.ErrInvalidQuestKind
}

type LevelProgress struct {
	Earned int `json:"earned"`
	Needed int `json:"needed"`
}

// UnlockedAchievement 本次解锁的成就摘要
type UnlockedAchievement struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	XPReward     int    `json:"xpReward"`
	PointsReward int    `json:"pointsReward"`
}

// Result 每次变更操作后返回给调用方的摘要
type Result struct {
	NewXP     int                   `json:"newXp"`
	NewLevel  int                   `json:"newLevel"`
	NewPoints int                   `json:"newPoints"`
	LeveledUp bool                  `json:"leveledUp"`
	Progress  LevelProgress         `json:"progress"`
	Unlocked  []UnlockedAchievement `json:"unlocked,omitempty"`
}

func newResult(user *model.User, leveledUp bool) *Result {
	earned, needed := leveling.LevelProgress(user.XP, user.Level)
	return &Result{
		NewXP:     user.XP,
		NewLevel:  user.Level,
		NewPoints: user.Points,
		LeveledUp: leveledUp,
		Progress:  LevelProgress{Earned: earned, Needed: needed},
	}
}

// Merge 合并同一请求中先后两次操作的结果，以后者的数值为准
func (r *Result) Merge(next *Result) *Result {
	if next == nil {
		return r
	}
	merged := *next
	merged.LeveledUp = r.LeveledUp || next.LeveledUp
	merged.Unlocked = append(append([]UnlockedAchievement{}, r.Unlocked...), next.Unlocked...)
	if len(merged.Unlocked) == 0 {
		merged.Unlocked = nil
	}
	return &merged
}

// maxPoints 积分上限，与经验上限相同
const maxPoints = leveling.MaxXP

// addPoints 在 maxPoints 处饱和
func addPoints(points, amount int) int {
	if amount <= 0 || points >= maxPoints {
		return points
	}
	if amount > maxPoints-points {
		return maxPoints
	}
	return points + amount
}

// syncLevel 按经验重算等级，只升不降，返回是否升级
func syncLevel(user *model.User) bool {
	newLevel := leveling.LevelFromXP(user.XP)
	if newLevel > user.Level {
		user.Level = newLevel
		return true
	}
	return false
}
