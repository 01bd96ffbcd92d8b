package service

import (
	"context"
	"errors"
	"fmt"
	"gamify_backend/internal/config"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"
	"gamify_backend/pkg/monitoring"
	"gamify_backend/pkg/tracing"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AchievementCatalog 只读成就目录，由调用方注入
type AchievementCatalog interface {
	List(ctx context.Context) ([]model.Achievement, error)
}

// StaticCatalog 固定的内存目录
type StaticCatalog []model.Achievement

func (c StaticCatalog) List(ctx context.Context) ([]model.Achievement, error) {
	out := make([]model.Achievement, len(c))
	copy(out, c)
	return out, nil
}

// ProgressionService 经验、任务与成就的状态变更。
// 每个操作在一个事务内完成读改写，同一用户的操作在进程内串行执行。
type ProgressionService struct {
	DB              *gorm.DB
	UserRepo        *repository.UserRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
	Catalog         AchievementCatalog

	rewards atomic.Pointer[config.GamificationConfig]
	locks   *userLocks
	now     func() time.Time
}

func NewProgressionService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	achievementRepo *repository.AchievementRepository,
	catalog AchievementCatalog,
	rewards config.GamificationConfig,
) *ProgressionService {
	s := &ProgressionService{
		DB:              db,
		UserRepo:        userRepo,
		ProgressRepo:    progressRepo,
		AchievementRepo: achievementRepo,
		Catalog:         catalog,
		locks:           newUserLocks(),
		now:             func() time.Time { return time.Now().UTC() },
	}
	s.rewards.Store(&rewards)
	return s
}

// UpdateRewards 配置热更新时调用，非法配置会被忽略
func (s *ProgressionService) UpdateRewards(cfg config.GamificationConfig) {
	if err := cfg.Validate(); err != nil {
		logger.Log.Warn("Ignoring invalid gamification config", zap.Error(err))
		return
	}
	s.rewards.Store(&cfg)
	logger.Log.Info("Gamification rewards updated",
		zap.Int("xp_per_action", cfg.XPPerAction),
		zap.Int("daily_quest_xp", cfg.DailyQuestXP),
		zap.Int("weekly_quest_xp", cfg.WeeklyQuestXP),
	)
}

func (s *ProgressionService) Rewards() config.GamificationConfig {
	return *s.rewards.Load()
}

// AwardXP 发放经验，更新连续天数、等级以及当天/当周进度
func (s *ProgressionService) AwardXP(ctx context.Context, userID uint, amount int, kind ActionKind) (*Result, error) {
	if amount <= 0 || amount > leveling.MaxXP {
		return nil, util.ErrInvalidAmount
	}

	ctx, span := tracing.Tracer.Start(ctx, "progression.AwardXP", trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int("xp.amount", amount),
		attribute.String("action.kind", string(kind)),
	))
	defer span.End()

	unlock := s.locks.Lock(userID)
	defer unlock()

	var result *Result
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.UserRepo.WithTx(tx)
		user, err := users.FindByIDForUpdate(userID)
		if err != nil {
			return err
		}

		leveledUp, err := s.applyXP(tx, user, amount, kind)
		if err != nil {
			return err
		}
		if err := users.SaveProgress(user); err != nil {
			return err
		}

		result = newResult(user, leveledUp)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}

	s.observeXP(userID, amount, kind, result)
	return result, nil
}

// CompleteQuest 完成每日/每周任务：按固定值发放经验并增加积分
func (s *ProgressionService) CompleteQuest(ctx context.Context, userID uint, kind QuestKind) (*Result, error) {
	reward, err := questReward(s.Rewards(), kind)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "progression.CompleteQuest", trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("quest.kind", string(kind)),
	))
	defer span.End()

	unlock := s.locks.Lock(userID)
	defer unlock()

	var result *Result
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.UserRepo.WithTx(tx)
		user, err := users.FindByIDForUpdate(userID)
		if err != nil {
			return err
		}

		leveledUp, err := s.applyXP(tx, user, reward.XP, ActionKindQuest)
		if err != nil {
			return err
		}
		user.Points = addPoints(user.Points, reward.Points)

		if err := users.SaveProgress(user); err != nil {
			return err
		}

		result = newResult(user, leveledUp)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}

	monitoring.QuestsCompleted.WithLabelValues(string(kind)).Inc()
	s.observeXP(userID, reward.XP, ActionKindQuest, result)
	return result, nil
}

// CheckAchievements 对照目录单遍解锁成就并发放奖励，重复调用不会重复解锁。
// 奖励经验不会再触发本轮检查，但等级会按最终经验补齐。
func (s *ProgressionService) CheckAchievements(ctx context.Context, userID uint) (*Result, error) {
	ctx, span := tracing.Tracer.Start(ctx, "progression.CheckAchievements", trace.WithAttributes(
		attribute.Int64("user.id", int64(userID)),
	))
	defer span.End()

	catalog, err := s.Catalog.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		result *Result
		newly  []model.Achievement
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.UserRepo.WithTx(tx)
		achievements := s.AchievementRepo.WithTx(tx)

		user, err := users.FindByIDForUpdate(userID)
		if err != nil {
			return err
		}

		unlockedIDs, err := achievements.UnlockedIDs(user.ID)
		if err != nil {
			return err
		}

		newly = EvaluateAchievements(user, catalog, unlockedIDs)
		if len(newly) == 0 {
			result = newResult(user, false)
			return nil
		}

		now := s.now()
		for _, a := range newly {
			inserted, err := achievements.Unlock(user.ID, a.ID, now)
			if err != nil {
				return err
			}
			if !inserted {
				return fmt.Errorf("achievement %d unlocked concurrently for user %d: %w", a.ID, user.ID, util.ErrRetryable)
			}
		}

		leveledUp := syncLevel(user)
		if err := users.SaveProgress(user); err != nil {
			return err
		}

		result = newResult(user, leveledUp)
		result.Unlocked = summarize(newly)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}

	for _, a := range newly {
		monitoring.AchievementsUnlocked.WithLabelValues(string(a.RequirementType)).Inc()
		logger.ForUser(userID).Info("Achievement unlocked",
			zap.Uint("achievement_id", a.ID),
			zap.String("achievement", a.Name),
		)
	}
	if result.LeveledUp {
		monitoring.LevelUps.Inc()
	}
	return result, nil
}

// EarnXP 发放经验后立即检查成就。成就检查失败不影响已提交的经验，下次检查会补上。
func (s *ProgressionService) EarnXP(ctx context.Context, userID uint, amount int, kind ActionKind) (*Result, error) {
	awarded, err := s.AwardXP(ctx, userID, amount, kind)
	if err != nil {
		return nil, err
	}

	checked, err := s.CheckAchievements(ctx, userID)
	if err != nil {
		logger.ForUser(userID).Warn("Achievement check failed after awarding xp", zap.Error(err))
		return awarded, nil
	}
	return awarded.Merge(checked), nil
}

func (s *ProgressionService) applyXP(tx *gorm.DB, user *model.User, amount int, kind ActionKind) (bool, error) {
	// 超出经验上限时整笔拒绝，不做部分发放
	xp, ok := leveling.AddXP(user.XP, amount)
	if !ok {
		return false, fmt.Errorf("user %d xp %d + %d exceeds limit: %w", user.ID, user.XP, amount, util.ErrInvalidAmount)
	}

	now := s.now()
	user.StreakCount = nextStreak(user.StreakCount, user.LastActivity, now)
	user.XP = xp
	user.LastActivity = &now
	leveledUp := syncLevel(user)

	column := progressColumn(kind)
	progress := s.ProgressRepo.WithTx(tx)

	daily, err := progress.GetOrCreateDaily(user.ID, dayKey(now))
	if err != nil {
		return false, err
	}
	if err := progress.RecordDaily(daily, column, user.StreakCount); err != nil {
		return false, err
	}

	weekly, err := progress.GetOrCreateWeekly(user.ID, weekStartKey(now))
	if err != nil {
		return false, err
	}
	if err := progress.RecordWeekly(weekly, column); err != nil {
		return false, err
	}

	return leveledUp, nil
}

func (s *ProgressionService) observeXP(userID uint, amount int, kind ActionKind, result *Result) {
	monitoring.XPAwarded.WithLabelValues(metricKind(kind)).Add(float64(amount))
	if result.LeveledUp {
		monitoring.LevelUps.Inc()
		logger.ForUser(userID).Info("User leveled up",
			zap.Int("level", result.NewLevel),
			zap.Int("xp", result.NewXP),
		)
	}
}

func progressColumn(kind ActionKind) repository.ProgressColumn {
	switch kind {
	case ActionKindAction:
		return repository.ActionsCompleted
	case ActionKindQuest:
		return repository.QuestsCompleted
	}
	return ""
}

// metricKind 限制标签取值，防止任意字符串撑爆指标基数
func metricKind(kind ActionKind) string {
	switch kind {
	case ActionKindAction, ActionKindQuest:
		return string(kind)
	}
	return "other"
}

func summarize(achievements []model.Achievement) []UnlockedAchievement {
	out := make([]UnlockedAchievement, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, UnlockedAchievement{
			ID:           a.ID,
			Name:         a.Name,
			Icon:         a.Icon,
			XPReward:     a.XPReward,
			PointsReward: a.PointsReward,
		})
	}
	return out
}

// storageError 领域错误原样返回，其余视为存储层失败，标记为可重试
func storageError(err error) error {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrAchievementNotFound),
		errors.Is(err, util.ErrInvalidAmount),
		errors.Is(err, util.ErrInvalidQuestKind),
		errors.Is(err, util.ErrRetryable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %w", util.ErrRetryable, err)
}
