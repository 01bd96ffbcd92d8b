package service

import (
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
)

// meetsRequirement 未知的条件类型永不解锁
func meetsRequirement(user *model.User, a *model.Achievement) bool {
	switch a.RequirementType {
	case model.RequirementLevel:
		return user.Level >= a.RequirementValue
	case model.RequirementXP:
		return user.XP >= a.RequirementValue
	case model.RequirementStreak:
		return user.StreakCount >= a.RequirementValue
	}
	return false
}

// EvaluateAchievements 按目录顺序单遍检查未解锁的成就，命中即把奖励加到 user 上。
// 奖励经验不会触发本轮的等级重算，也不会让本轮再检查一次，
// 但会影响目录中排在后面的 xp 类条件。经验与积分奖励在上限处截断。
func EvaluateAchievements(user *model.User, catalog []model.Achievement, unlocked map[uint]bool) []model.Achievement {
	var newly []model.Achievement
	for i := range catalog {
		a := &catalog[i]
		if unlocked[a.ID] {
			continue
		}
		if !meetsRequirement(user, a) {
			continue
		}

		user.XP, _ = leveling.AddXP(user.XP, a.XPReward)
		user.Points = addPoints(user.Points, a.PointsReward)
		newly = append(newly, *a)
	}
	return newly
}
