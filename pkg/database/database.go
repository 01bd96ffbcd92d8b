package database

import (
	"fmt"
	"gamify_backend/internal/config"
	"gamify_backend/internal/model"
	"gamify_backend/internal/util"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case util.DriverMySQL:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
				cfg.User,
				cfg.Password,
				cfg.Host,
				cfg.Port,
				cfg.DBName,
				cfg.Charset,
				cfg.ParseTime,
			)
		}
		return mysql.Open(dsn), nil
	case util.DriverSQLite, "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "whop_gamify.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// InitDB 打开数据库连接，不做迁移
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	// SQLite 只有一个写者，单连接可避免 database is locked，内存库也依赖同一连接
	if cfg.Driver == util.DriverSQLite || cfg.Driver == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.DailyProgress{},
		&model.WeeklyProgress{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

// DefaultAchievements 初始成就目录
func DefaultAchievements() []model.Achievement {
	return []model.Achievement{
		{Name: "First Steps", Description: "Reach level 1", Icon: "🎯", XPReward: 10, RequirementType: model.RequirementLevel, RequirementValue: 1},
		{Name: "Getting Started", Description: "Reach level 5", Icon: "⭐", XPReward: 25, RequirementType: model.RequirementLevel, RequirementValue: 5},
		{Name: "Rising Star", Description: "Reach level 10", Icon: "🌟", XPReward: 50, RequirementType: model.RequirementLevel, RequirementValue: 10},
		{Name: "XP Collector", Description: "Earn 1000 XP", Icon: "💎", XPReward: 100, RequirementType: model.RequirementXP, RequirementValue: 1000},
		{Name: "Streak Master", Description: "Maintain a 7-day streak", Icon: "🔥", XPReward: 75, RequirementType: model.RequirementStreak, RequirementValue: 7},
	}
}

// Seed 成就表为空时写入默认成就
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	achievements := DefaultAchievements()
	if err := db.Create(&achievements).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d achievements", len(achievements))
	return nil
}
