package service

import (
	"context"
	"errors"
	"gamify_backend/internal/config"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/model"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Identity 来自 Whop OAuth 或 webhook 的用户资料
type Identity struct {
	ExternalUserID string
	Username       string
	Email          string
}

// IdentityUpdate 字段为 nil 表示保持原值
type IdentityUpdate struct {
	ExternalUserID string
	Username       *string
	Email          *string
}

const (
	DemoUserID      = "demo_user"
	unknownUsername = "Unknown"
)

type UserService struct {
	UserRepo *repository.UserRepository
	admins   map[string]bool
	now      func() time.Time
}

func NewUserService(userRepo *repository.UserRepository, adminCfg config.AdminConfig) *UserService {
	admins := make(map[string]bool, len(adminCfg.WhopUserIDs))
	for _, id := range adminCfg.WhopUserIDs {
		admins[id] = true
	}
	return &UserService{
		UserRepo: userRepo,
		admins:   admins,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return s.UserRepo.WithTx(s.UserRepo.DB.WithContext(ctx)).FindByID(id)
}

func (s *UserService) roleFor(externalID string) model.UserRole {
	if s.admins[externalID] {
		return model.Admin
	}
	return model.Member
}

// displayName 优先用户名，其次邮箱
func displayName(username, email string) string {
	if u := strings.TrimSpace(username); u != "" {
		return u
	}
	if e := strings.TrimSpace(email); e != "" {
		return e
	}
	return unknownUsername
}

// CreateIfAbsent 新用户从零开始，已存在的用户不做修改
func (s *UserService) CreateIfAbsent(ctx context.Context, id Identity) (*model.User, bool, error) {
	if strings.TrimSpace(id.ExternalUserID) == "" {
		return nil, false, util.ErrInvalidWebhookPayload
	}

	repo := s.UserRepo.WithTx(s.UserRepo.DB.WithContext(ctx))
	user, created, err := repo.CreateIfAbsent(&model.User{
		WhopUserID: id.ExternalUserID,
		Username:   displayName(id.Username, id.Email),
		Email:      id.Email,
		Role:       s.roleFor(id.ExternalUserID),
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		logger.ForUser(user.ID).Info("User created", zap.String("whop_user_id", user.WhopUserID))
	}
	return user, created, nil
}

// UpdateIdentity 只覆盖非 nil 字段，用户不存在返回 ErrUserNotFound
func (s *UserService) UpdateIdentity(ctx context.Context, upd IdentityUpdate) (*model.User, error) {
	repo := s.UserRepo.WithTx(s.UserRepo.DB.WithContext(ctx))
	user, err := repo.FindByWhopID(upd.ExternalUserID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	user.Role = s.roleFor(user.WhopUserID)

	if err := repo.UpdateIdentity(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertIdentity OAuth 登录时创建或刷新用户资料
func (s *UserService) UpsertIdentity(ctx context.Context, id Identity) (*model.User, error) {
	user, created, err := s.CreateIfAbsent(ctx, id)
	if err != nil {
		return nil, err
	}
	if created {
		return user, nil
	}

	upd := IdentityUpdate{ExternalUserID: id.ExternalUserID}
	if id.Username != "" {
		upd.Username = &id.Username
	}
	if id.Email != "" {
		upd.Email = &id.Email
	}
	return s.UpdateIdentity(ctx, upd)
}

// EnsureDemoUser 演示账号，首次创建时带一些初始进度
func (s *UserService) EnsureDemoUser(ctx context.Context, username, email string) (*model.User, error) {
	repo := s.UserRepo.WithTx(s.UserRepo.DB.WithContext(ctx))
	user, err := repo.FindByWhopID(DemoUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	if username == "" {
		username = "DemoUser"
	}
	if email == "" {
		email = "demo@example.com"
	}

	now := s.now()
	const demoXP = 1250
	user, _, err = repo.CreateIfAbsent(&model.User{
		WhopUserID:   DemoUserID,
		Username:     username,
		Email:        email,
		Role:         model.Member,
		XP:           demoXP,
		Level:        leveling.LevelFromXP(demoXP),
		Points:       25,
		StreakCount:  3,
		LastActivity: &now,
	})
	return user, err
}
