package service

import (
	"context"
	"gamify_backend/internal/config"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB, achievements ...model.Achievement) StaticCatalog {
	t.Helper()
	for i := range achievements {
		achievements[i].ID = 0
		require.NoError(t, db.Create(&achievements[i]).Error)
	}
	return StaticCatalog(achievements)
}

func dailyFor(t *testing.T, db *gorm.DB, userID uint) *model.DailyProgress {
	t.Helper()
	daily, err := repository.NewProgressRepository(db).FindDaily(userID, dayKey(fixedNow))
	require.NoError(t, err)
	require.NotNil(t, daily)
	return daily
}

func weeklyFor(t *testing.T, db *gorm.DB, userID uint) *model.WeeklyProgress {
	t.Helper()
	weekly, err := repository.NewProgressRepository(db).FindWeekly(userID, weekStartKey(fixedNow))
	require.NoError(t, err)
	require.NotNil(t, weekly)
	return weekly
}

func TestAwardXP_FirstLevelUp(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{})

	result, err := svc.AwardXP(context.Background(), user.ID, 150, ActionKindAction)
	require.NoError(t, err)

	assert.Equal(t, 150, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, LevelProgress{Earned: 50, Needed: 200}, result.Progress)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 150, stored.XP)
	assert.Equal(t, 1, stored.Level)
	assert.Equal(t, 1, stored.StreakCount)
	require.NotNil(t, stored.LastActivity)
	assert.True(t, stored.LastActivity.Equal(fixedNow))

	daily := dailyFor(t, db, user.ID)
	assert.Equal(t, 1, daily.ActionsCompleted)
	assert.Equal(t, 0, daily.QuestsCompleted)
	assert.Equal(t, 1, daily.StreakCount)

	weekly := weeklyFor(t, db, user.ID)
	assert.Equal(t, "2024-03-10", weekly.WeekStart)
	assert.Equal(t, 1, weekly.ActionsCompleted)
}

func TestAwardXP_NoLevelUpWithinLevel(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{XP: 120, Level: 1})

	result, err := svc.AwardXP(context.Background(), user.ID, 5, ActionKindAction)
	require.NoError(t, err)

	assert.Equal(t, 125, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.False(t, result.LeveledUp)
}

func TestAwardXP_UnknownKindCountsNothing(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{})

	result, err := svc.AwardXP(context.Background(), user.ID, 10, ActionKind("bonus"))
	require.NoError(t, err)
	assert.Equal(t, 10, result.NewXP)

	daily := dailyFor(t, db, user.ID)
	assert.Equal(t, 0, daily.ActionsCompleted)
	assert.Equal(t, 0, daily.QuestsCompleted)

	weekly := weeklyFor(t, db, user.ID)
	assert.Equal(t, 0, weekly.ActionsCompleted)
	assert.Equal(t, 0, weekly.QuestsCompleted)
}

func TestAwardXP_Errors(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{XP: 40})

	_, err := svc.AwardXP(context.Background(), user.ID, 0, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.AwardXP(context.Background(), user.ID, -5, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.AwardXP(context.Background(), 9999, 5, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	assert.Equal(t, 40, reloadUser(t, db, user.ID).XP)
}

func TestAwardXP_RejectsXPOverLimit(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	nearCap := leveling.MaxXP - 10
	user := seedUser(t, db, model.User{XP: nearCap, Level: leveling.LevelFromXP(nearCap), StreakCount: 2})

	_, err := svc.AwardXP(context.Background(), user.ID, leveling.MaxXP+1, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.AwardXP(context.Background(), user.ID, math.MaxInt, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	_, err = svc.AwardXP(context.Background(), user.ID, 11, ActionKindAction)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, nearCap, stored.XP)
	assert.Equal(t, 2, stored.StreakCount)
	assert.Nil(t, stored.LastActivity)

	result, err := svc.AwardXP(context.Background(), user.ID, 10, ActionKindAction)
	require.NoError(t, err)
	assert.Equal(t, leveling.MaxXP, result.NewXP)
	assert.Equal(t, leveling.LevelFromXP(leveling.MaxXP), result.NewLevel)
}

func TestAwardXP_Streak(t *testing.T) {
	svc, db := newTestProgression(t, nil)

	yesterday := fixedNow.AddDate(0, 0, -1)
	longAgo := fixedNow.AddDate(0, 0, -5)
	earlierToday := fixedNow.Add(-2 * time.Hour)

	continuing := seedUser(t, db, model.User{WhopUserID: "a", StreakCount: 2, LastActivity: &yesterday})
	broken := seedUser(t, db, model.User{WhopUserID: "b", StreakCount: 9, LastActivity: &longAgo})
	sameDay := seedUser(t, db, model.User{WhopUserID: "c", StreakCount: 4, LastActivity: &earlierToday})

	for _, u := range []*model.User{continuing, broken, sameDay} {
		_, err := svc.AwardXP(context.Background(), u.ID, 5, ActionKindAction)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, reloadUser(t, db, continuing.ID).StreakCount)
	assert.Equal(t, 3, dailyFor(t, db, continuing.ID).StreakCount)
	assert.Equal(t, 1, reloadUser(t, db, broken.ID).StreakCount)
	assert.Equal(t, 4, reloadUser(t, db, sameDay.ID).StreakCount)
}

func TestAwardXP_ConcurrentSameUser(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{})

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AwardXP(context.Background(), user.ID, 5, ActionKindAction)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, workers*5, stored.XP)
	assert.Equal(t, 1, stored.Level)
	assert.Equal(t, workers, dailyFor(t, db, user.ID).ActionsCompleted)
	assert.Equal(t, 0, svc.locks.size())
}

func TestCompleteQuest_Weekly(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{XP: 250, Level: 1, Points: 2})

	result, err := svc.CompleteQuest(context.Background(), user.ID, QuestWeekly)
	require.NoError(t, err)

	assert.Equal(t, 350, result.NewXP)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 7, result.NewPoints)
	assert.True(t, result.LeveledUp)

	daily := dailyFor(t, db, user.ID)
	assert.Equal(t, 1, daily.QuestsCompleted)
	assert.Equal(t, 0, daily.ActionsCompleted)
	assert.Equal(t, 1, weeklyFor(t, db, user.ID).QuestsCompleted)
}

func TestCompleteQuest_Daily(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{})

	result, err := svc.CompleteQuest(context.Background(), user.ID, QuestDaily)
	require.NoError(t, err)

	assert.Equal(t, 25, result.NewXP)
	assert.Equal(t, 0, result.NewLevel)
	assert.Equal(t, 1, result.NewPoints)
	assert.False(t, result.LeveledUp)
}

func TestCompleteQuest_InvalidKindLeavesUserUntouched(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{XP: 30, Points: 3})

	_, err := svc.CompleteQuest(context.Background(), user.ID, QuestKind("monthly"))
	assert.ErrorIs(t, err, util.ErrInvalidQuestKind)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 30, stored.XP)
	assert.Equal(t, 3, stored.Points)
	assert.Nil(t, stored.LastActivity)

	daily, err := repository.NewProgressRepository(db).FindDaily(user.ID, dayKey(fixedNow))
	require.NoError(t, err)
	assert.Nil(t, daily)
}

func TestCompleteQuest_UsesUpdatedRewards(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	user := seedUser(t, db, model.User{})

	rewards := config.DefaultGamification()
	rewards.DailyQuestXP = 40
	rewards.DailyQuestPoints = 3
	svc.UpdateRewards(rewards)

	result, err := svc.CompleteQuest(context.Background(), user.ID, QuestDaily)
	require.NoError(t, err)
	assert.Equal(t, 40, result.NewXP)
	assert.Equal(t, 3, result.NewPoints)
}

func TestUpdateRewards_IgnoresInvalid(t *testing.T) {
	svc, _ := newTestProgression(t, nil)

	invalid := config.DefaultGamification()
	invalid.WeeklyQuestXP = 0
	svc.UpdateRewards(invalid)

	assert.Equal(t, config.DefaultGamification(), svc.Rewards())
}

func TestCheckAchievements_LevelFiveUnlockOnce(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	svc.Catalog = seedCatalog(t, db, achievement(0, "Getting Started", model.RequirementLevel, 5, 25, 0))
	user := seedUser(t, db, model.User{XP: 1500, Level: 5})

	result, err := svc.CheckAchievements(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, "Getting Started", result.Unlocked[0].Name)
	assert.Equal(t, 1525, result.NewXP)
	assert.Equal(t, 5, result.NewLevel)

	var count int64
	require.NoError(t, db.Model(&model.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	again, err := svc.CheckAchievements(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Unlocked)
	assert.Equal(t, 1525, again.NewXP)

	require.NoError(t, db.Model(&model.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckAchievements_RewardRestoresLevel(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	svc.Catalog = seedCatalog(t, db, achievement(0, "First Steps", model.RequirementLevel, 1, 20, 2))
	user := seedUser(t, db, model.User{XP: 290, Level: 1})

	result, err := svc.CheckAchievements(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 310, result.NewXP)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 2, result.NewPoints)
	assert.True(t, result.LeveledUp)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 2, stored.Level)
}

func TestCheckAchievements_RewardCappedAtXPLimit(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	svc.Catalog = seedCatalog(t, db,
		achievement(0, "Collector", model.RequirementXP, 1000, 500, maxPoints),
		achievement(0, "Hoarder", model.RequirementXP, 1000, 500, 10),
	)
	nearCap := leveling.MaxXP - 100
	user := seedUser(t, db, model.User{XP: nearCap, Level: leveling.LevelFromXP(nearCap), Points: 5})

	result, err := svc.CheckAchievements(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, result.Unlocked, 2)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, leveling.MaxXP, stored.XP)
	assert.Equal(t, leveling.LevelFromXP(leveling.MaxXP), stored.Level)
	assert.Equal(t, maxPoints, stored.Points)
}

func TestCheckAchievements_NothingToUnlock(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	svc.Catalog = seedCatalog(t, db, achievement(0, "Streak Master", model.RequirementStreak, 7, 75, 0))
	user := seedUser(t, db, model.User{XP: 10, StreakCount: 3})

	result, err := svc.CheckAchievements(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Unlocked)
	assert.Equal(t, 10, result.NewXP)
}

func TestEarnXP_AwardsAndUnlocks(t *testing.T) {
	svc, db := newTestProgression(t, nil)
	svc.Catalog = seedCatalog(t, db, achievement(0, "First Steps", model.RequirementLevel, 1, 10, 0))
	user := seedUser(t, db, model.User{})

	result, err := svc.EarnXP(context.Background(), user.ID, 150, ActionKindAction)
	require.NoError(t, err)

	assert.Equal(t, 160, result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.True(t, result.LeveledUp)
	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, "First Steps", result.Unlocked[0].Name)
}
