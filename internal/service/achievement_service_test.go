package service

import (
	"context"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAchievementService(repository.NewAchievementRepository(db), repository.NewUserRepository(db), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, AchievementRequest{
		Name:             "Marathon",
		Icon:             "🏃",
		XPReward:         40,
		RequirementType:  "streak",
		RequirementValue: 30,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.RequirementStreak, created.RequirementType)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Marathon", list[0].Name)

	invalid := []AchievementRequest{
		{Name: "", RequirementType: "level"},
		{Name: "x", RequirementType: "quests"},
		{Name: "x", RequirementType: "xp", XPReward: -1},
		{Name: "x", RequirementType: "xp", PointsReward: -1},
		{Name: "x", RequirementType: "xp", RequirementValue: -5},
		{Name: "x", RequirementType: "xp", XPReward: leveling.MaxXP + 1},
		{Name: "x", RequirementType: "xp", PointsReward: math.MaxInt},
	}
	for _, req := range invalid {
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, util.ErrInvalidRequirement, "%+v", req)
	}
}

func TestAchievementService_LeaderboardWithoutRedis(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAchievementService(repository.NewAchievementRepository(db), repository.NewUserRepository(db), nil)

	seedUser(t, db, model.User{WhopUserID: "a", Username: "alice", XP: 300, Level: 2})
	seedUser(t, db, model.User{WhopUserID: "b", Username: "bob", XP: 1200, Level: 4})
	seedUser(t, db, model.User{WhopUserID: "c", Username: "carol", XP: 50})

	board, err := svc.GetLeaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, LeaderboardEntry{Rank: 1, UserID: board[0].UserID, Username: "bob", XP: 1200, Level: 4}, board[0])
	assert.Equal(t, "alice", board[1].Username)
	assert.Equal(t, 2, board[1].Rank)

	all, err := svc.GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAchievementService_LeaderboardRebuildIgnoresCallerCancel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAchievementService(repository.NewAchievementRepository(db), repository.NewUserRepository(db), nil)
	seedUser(t, db, model.User{WhopUserID: "a", Username: "alice", XP: 300, Level: 2})

	// 共享重建不能因首个请求断开而让其他等待者一起失败
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board, err := svc.GetLeaderboard(ctx, 5)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "alice", board[0].Username)
}
