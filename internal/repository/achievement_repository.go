package repository

import (
	"context"
	"errors"
	"gamify_backend/internal/model"
	"gamify_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) WithTx(tx *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: tx}
}

// List 返回完整成就目录，按 id 排序
func (r *AchievementRepository) List(ctx context.Context) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByID(id uint) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.First(&achievement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAchievementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

// UnlockedIDs 用户已解锁的成就 id 集合
func (r *AchievementRepository) UnlockedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Unlock 写入解锁记录。唯一约束冲突时返回 false，不报错。
func (r *AchievementRepository) Unlock(userID, achievementID uint, at time.Time) (bool, error) {
	record := model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindUnlockedByUserID 最近解锁的在前，limit <= 0 表示不限
func (r *AchievementRepository) FindUnlockedByUserID(userID uint, limit int) ([]model.UserAchievement, error) {
	var unlocked []model.UserAchievement
	q := r.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&unlocked).Error; err != nil {
		return nil, err
	}
	return unlocked, nil
}
