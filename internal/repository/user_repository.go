package repository

import (
	"errors"
	"gamify_backend/internal/model"
	"gamify_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

// CreateIfAbsent 按 whop_user_id 插入，已存在则不做任何修改。
// 返回库中的记录以及是否由本次调用创建。
func (r *UserRepository) CreateIfAbsent(user *model.User) (*model.User, bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "whop_user_id"}},
		DoNothing: true,
	}).Create(user)
	if res.Error != nil {
		return nil, false, res.Error
	}

	existing, err := r.FindByWhopID(user.WhopUserID)
	if err != nil {
		return nil, false, err
	}
	return existing, res.RowsAffected > 0, nil
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate 在事务内加行锁读取，SQLite 方言会忽略 FOR UPDATE
func (r *UserRepository) FindByIDForUpdate(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByWhopID(whopUserID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("whop_user_id = ?", whopUserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveProgress 只写回进度相关字段，避免覆盖并发修改的资料字段
func (r *UserRepository) SaveProgress(user *model.User) error {
	return r.DB.Model(user).Select("xp", "level", "points", "streak_count", "last_activity").Updates(user).Error
}

// UpdateIdentity 更新用户名、邮箱、角色
func (r *UserRepository) UpdateIdentity(user *model.User) error {
	return r.DB.Model(user).Select("username", "email", "role").Updates(user).Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("xp DESC").Order("id ASC").Limit(limit).Find(&users).Error
	return users, err
}
