package service

import (
	"context"
	"crypto/subtle"
	"gamify_backend/internal/config"
	"gamify_backend/internal/model"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

const (
	pendingStateLimit = 4096
	stateTTL          = 10 * time.Minute
)

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService struct {
	Provider IdentityProvider
	Users    *UserService
	jwt      config.JWTConfig
	// 未完成的 OAuth state，容量有限，最久未用的先淘汰
	states *lru.Cache
	now    func() time.Time
}

// NewAuthService provider 为 nil 表示未配置 Whop
func NewAuthService(provider IdentityProvider, users *UserService, jwtCfg config.JWTConfig) *AuthService {
	states, _ := lru.New(pendingStateLimit)
	return &AuthService{
		Provider: provider,
		Users:    users,
		jwt:      jwtCfg,
		states:   states,
		now:      time.Now,
	}
}

// BeginLogin 生成 state 并返回 Whop 授权地址。
// state 需由调用方同时写入发起登录的浏览器，回调时一并校验。
func (s *AuthService) BeginLogin() (authURL, state string, err error) {
	if s.Provider == nil {
		return "", "", util.ErrWhopNotConfigured
	}

	state = uuid.NewString()
	s.states.Add(state, s.now())
	return s.Provider.AuthCodeURL(state), state, nil
}

func (s *AuthService) consumeState(state string) bool {
	v, ok := s.states.Get(state)
	if !ok {
		return false
	}
	s.states.Remove(state)

	issued, ok := v.(time.Time)
	return ok && s.now().Sub(issued) <= stateTTL
}

// CompleteLogin 处理 OAuth 回调：校验 state，换取资料，创建或更新用户并签发 JWT。
// boundState 为浏览器 cookie 中保存的 state，必须与回调参数一致。
func (s *AuthService) CompleteLogin(ctx context.Context, code, state, boundState string) (*LoginResult, error) {
	if s.Provider == nil {
		return nil, util.ErrWhopNotConfigured
	}
	if code == "" {
		return nil, util.ErrMissingAuthCode
	}
	if boundState == "" || subtle.ConstantTimeCompare([]byte(state), []byte(boundState)) != 1 {
		logger.Log.Warn("OAuth state does not match login cookie")
		return nil, util.ErrInvalidOAuthState
	}
	if !s.consumeState(state) {
		return nil, util.ErrInvalidOAuthState
	}

	profile, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.Users.UpsertIdentity(ctx, Identity{
		ExternalUserID: profile.ID,
		Username:       profile.Username,
		Email:          profile.Email,
	})
	if err != nil {
		return nil, err
	}

	logger.ForUser(user.ID).Info("Whop login", zap.String("whop_user_id", user.WhopUserID))
	return s.issue(user)
}

// DemoLogin 无需 Whop 的演示登录
func (s *AuthService) DemoLogin(ctx context.Context, username, email string) (*LoginResult, error) {
	user, err := s.Users.EnsureDemoUser(ctx, username, email)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*LoginResult, error) {
	token, err := util.GenerateJWT(user, s.jwt.Secret, s.jwt.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
