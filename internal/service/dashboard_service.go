package service

import (
	"context"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"time"
)

const recentAchievementLimit = 5

type DashboardService struct {
	UserRepo        *repository.UserRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
	Catalog         AchievementCatalog
	now             func() time.Time
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	achievementRepo *repository.AchievementRepository,
	catalog AchievementCatalog,
) *DashboardService {
	return &DashboardService{
		UserRepo:        userRepo,
		ProgressRepo:    progressRepo,
		AchievementRepo: achievementRepo,
		Catalog:         catalog,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

type Dashboard struct {
	User               *model.User             `json:"user"`
	Progress           LevelProgress           `json:"progress"`
	ProgressPercent    float64                 `json:"progressPercent"`
	Today              *model.DailyProgress    `json:"today"`
	ThisWeek           *model.WeeklyProgress   `json:"thisWeek"`
	RecentAchievements []model.UserAchievement `json:"recentAchievements"`
}

// AchievementStatus 目录中的成就及当前用户的解锁状态
type AchievementStatus struct {
	Achievement model.Achievement `json:"achievement"`
	Unlocked    bool              `json:"unlocked"`
	UnlockedAt  *time.Time        `json:"unlockedAt,omitempty"`
}

type Profile struct {
	User         *model.User         `json:"user"`
	Achievements []AchievementStatus `json:"achievements"`
}

// GetDashboard 今天或本周尚无记录时对应字段为 nil
func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	db := s.UserRepo.DB.WithContext(ctx)

	user, err := s.UserRepo.WithTx(db).FindByID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	progress := s.ProgressRepo.WithTx(db)
	today, err := progress.FindDaily(user.ID, dayKey(now))
	if err != nil {
		return nil, err
	}
	week, err := progress.FindWeekly(user.ID, weekStartKey(now))
	if err != nil {
		return nil, err
	}

	recent, err := s.AchievementRepo.WithTx(db).FindUnlockedByUserID(user.ID, recentAchievementLimit)
	if err != nil {
		return nil, err
	}

	earned, needed := leveling.LevelProgress(user.XP, user.Level)
	return &Dashboard{
		User:               user,
		Progress:           LevelProgress{Earned: earned, Needed: needed},
		ProgressPercent:    leveling.ProgressPercent(earned, needed),
		Today:              today,
		ThisWeek:           week,
		RecentAchievements: recent,
	}, nil
}

// GetProfile 返回完整目录并标注已解锁项
func (s *DashboardService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	db := s.UserRepo.DB.WithContext(ctx)

	user, err := s.UserRepo.WithTx(db).FindByID(userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.AchievementRepo.WithTx(db).FindUnlockedByUserID(user.ID, 0)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[uint]time.Time, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	statuses := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		status := AchievementStatus{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			t := at
			status.Unlocked = true
			status.UnlockedAt = &t
		}
		statuses = append(statuses, status)
	}

	return &Profile{User: user, Achievements: statuses}, nil
}
