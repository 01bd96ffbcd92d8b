package service

import (
	"gamify_backend/internal/config"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/database"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC) // 周四

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.InitDB(&config.DatabaseConfig{Driver: util.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestProgression(t *testing.T, catalog AchievementCatalog) (*ProgressionService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	if catalog == nil {
		catalog = StaticCatalog{}
	}
	svc := NewProgressionService(
		db,
		repository.NewUserRepository(db),
		repository.NewProgressRepository(db),
		repository.NewAchievementRepository(db),
		catalog,
		config.DefaultGamification(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, user model.User) *model.User {
	t.Helper()
	if user.WhopUserID == "" {
		user.WhopUserID = "whop_test"
	}
	if user.Role == "" {
		user.Role = model.Member
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func achievement(id uint, name string, reqType model.RequirementType, value, xp, points int) model.Achievement {
	a := model.Achievement{
		Name:             name,
		RequirementType:  reqType,
		RequirementValue: value,
		XPReward:         xp,
		PointsReward:     points,
	}
	a.ID = id
	return a
}
