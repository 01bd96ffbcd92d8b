package repository

import (
	"errors"
	"gamify_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressColumn 可递增的进度计数列
type ProgressColumn string

const (
	ActionsCompleted ProgressColumn = "actions_completed"
	QuestsCompleted  ProgressColumn = "quests_completed"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) WithTx(tx *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: tx}
}

// GetOrCreateDaily 插入冲突时视为他人已创建，直接读取已有记录
func (r *ProgressRepository) GetOrCreateDaily(userID uint, day string) (*model.DailyProgress, error) {
	record := model.DailyProgress{UserID: userID, Day: day}
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return nil, err
	}

	var daily model.DailyProgress
	if err := r.DB.Where("user_id = ? AND day = ?", userID, day).First(&daily).Error; err != nil {
		return nil, err
	}
	return &daily, nil
}

// GetOrCreateWeekly 同 GetOrCreateDaily
func (r *ProgressRepository) GetOrCreateWeekly(userID uint, weekStart string) (*model.WeeklyProgress, error) {
	record := model.WeeklyProgress{UserID: userID, WeekStart: weekStart}
	if err := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return nil, err
	}

	var weekly model.WeeklyProgress
	if err := r.DB.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&weekly).Error; err != nil {
		return nil, err
	}
	return &weekly, nil
}

// RecordDaily 递增计数列（column 为空则不递增）并同步连续天数
func (r *ProgressRepository) RecordDaily(daily *model.DailyProgress, column ProgressColumn, streak int) error {
	updates := map[string]interface{}{"streak_count": streak}
	if column != "" {
		updates[string(column)] = gorm.Expr(string(column)+" + ?", 1)
	}
	if err := r.DB.Model(daily).Updates(updates).Error; err != nil {
		return err
	}
	return r.DB.First(daily, daily.ID).Error
}

func (r *ProgressRepository) RecordWeekly(weekly *model.WeeklyProgress, column ProgressColumn) error {
	if column == "" {
		return nil
	}
	err := r.DB.Model(weekly).
		UpdateColumn(string(column), gorm.Expr(string(column)+" + ?", 1)).Error
	if err != nil {
		return err
	}
	return r.DB.First(weekly, weekly.ID).Error
}

// FindDaily 不存在时返回 nil, nil
func (r *ProgressRepository) FindDaily(userID uint, day string) (*model.DailyProgress, error) {
	var daily model.DailyProgress
	err := r.DB.Where("user_id = ? AND day = ?", userID, day).First(&daily).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &daily, nil
}

// FindWeekly 不存在时返回 nil, nil
func (r *ProgressRepository) FindWeekly(userID uint, weekStart string) (*model.WeeklyProgress, error) {
	var weekly model.WeeklyProgress
	err := r.DB.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&weekly).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &weekly, nil
}
