package service

import (
	"context"
	"encoding/json"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	leaderboardCacheKey = "gamify:leaderboard:"
	leaderboardTTL      = 30 * time.Second
	maxLeaderboardSize  = 100

	// 合并后的重建由多个请求共享，不跟随首个请求取消
	leaderboardRebuildTimeout = 5 * time.Second
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	// Redis 可为 nil，此时排行榜直接查库
	Redis *redis.Client

	group singleflight.Group
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		Redis:           rdb,
	}
}

// AchievementRequest 新增成就
type AchievementRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	XPReward         int    `json:"xpReward"`
	PointsReward     int    `json:"pointsReward"`
	RequirementType  string `json:"requirementType" binding:"required"`
	RequirementValue int    `json:"requirementValue"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

// List 实现 AchievementCatalog
func (s *AchievementService) List(ctx context.Context) ([]model.Achievement, error) {
	return s.AchievementRepo.List(ctx)
}

func (s *AchievementService) Create(ctx context.Context, req AchievementRequest) (*model.Achievement, error) {
	reqType := model.RequirementType(strings.TrimSpace(req.RequirementType))
	if strings.TrimSpace(req.Name) == "" || !reqType.Valid() {
		return nil, util.ErrInvalidRequirement
	}
	if req.XPReward < 0 || req.PointsReward < 0 || req.RequirementValue < 0 {
		return nil, util.ErrInvalidRequirement
	}
	if req.XPReward > leveling.MaxXP || req.PointsReward > maxPoints {
		return nil, util.ErrInvalidRequirement
	}

	achievement := &model.Achievement{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		Icon:             req.Icon,
		XPReward:         req.XPReward,
		PointsReward:     req.PointsReward,
		RequirementType:  reqType,
		RequirementValue: req.RequirementValue,
	}
	if err := s.AchievementRepo.WithTx(s.AchievementRepo.DB.WithContext(ctx)).Create(achievement); err != nil {
		return nil, err
	}

	logger.Log.Info("Achievement created", zap.Uint("achievement_id", achievement.ID), zap.String("name", achievement.Name))
	return achievement, nil
}

// GetLeaderboard 经验排行，启用 Redis 时缓存一小段时间
func (s *AchievementService) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > maxLeaderboardSize {
		limit = 10
	}
	key := leaderboardCacheKey + strconv.Itoa(limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		rebuildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaderboardRebuildTimeout)
		defer cancel()

		entries, err := s.loadLeaderboard(rebuildCtx, limit)
		if err != nil {
			return nil, err
		}
		s.storeLeaderboard(rebuildCtx, key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaderboardEntry), nil
}

func (s *AchievementService) loadLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.WithTx(s.UserRepo.DB.WithContext(ctx)).FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:     i + 1,
			UserID:   user.ID,
			Username: user.Username,
			XP:       user.XP,
			Level:    user.Level,
		}
	}
	return leaderboard, nil
}

func (s *AchievementService) storeLeaderboard(ctx context.Context, key string, entries []LeaderboardEntry) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, leaderboardTTL).Err(); err != nil {
		logger.Log.Warn("Leaderboard cache write failed", zap.Error(err))
	}
}
