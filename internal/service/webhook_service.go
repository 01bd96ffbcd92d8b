package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"
	"gamify_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

const (
	EventUserCreated           = "user.created"
	EventUserUpdated           = "user.updated"
	EventSubscriptionCreated   = "subscription.created"
	EventSubscriptionCancelled = "subscription.cancelled"
)

type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type whopUserPayload struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type WebhookService struct {
	Users  *UserService
	secret string
}

func NewWebhookService(users *UserService, secret string) *WebhookService {
	return &WebhookService{Users: users, secret: secret}
}

// VerifySignature 签名为 HMAC-SHA256(secret, body) 的十六进制，未配置密钥时一律拒绝
func (s *WebhookService) VerifySignature(payload []byte, signature string) error {
	if s.secret == "" || signature == "" {
		return util.ErrInvalidWebhookSignature
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
		return util.ErrInvalidWebhookSignature
	}
	return nil
}

// Handle 处理已验签的事件，返回事件类型。未知事件忽略。
func (s *WebhookService) Handle(ctx context.Context, payload []byte) (string, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.Type == "" {
		return "", util.ErrInvalidWebhookPayload
	}

	err := s.dispatch(ctx, event)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.WebhookEvents.WithLabelValues(eventLabel(event.Type), outcome).Inc()
	return event.Type, err
}

func (s *WebhookService) dispatch(ctx context.Context, event WebhookEvent) error {
	switch event.Type {
	case EventUserCreated:
		data, err := decodeUserPayload(event.Data)
		if err != nil {
			return err
		}
		_, _, err = s.Users.CreateIfAbsent(ctx, Identity{
			ExternalUserID: data.ID,
			Username:       deref(data.Username),
			Email:          deref(data.Email),
		})
		return err

	case EventUserUpdated:
		data, err := decodeUserPayload(event.Data)
		if err != nil {
			return err
		}
		_, err = s.Users.UpdateIdentity(ctx, IdentityUpdate{
			ExternalUserID: data.ID,
			Username:       data.Username,
			Email:          data.Email,
		})
		if errors.Is(err, util.ErrUserNotFound) {
			logger.Log.Debug("Ignoring update for unknown user", zap.String("whop_user_id", data.ID))
			return nil
		}
		return err

	case EventSubscriptionCreated:
		logger.Log.Info("New subscription created", zap.ByteString("data", event.Data))
	case EventSubscriptionCancelled:
		logger.Log.Info("Subscription cancelled", zap.ByteString("data", event.Data))
	default:
		logger.Log.Debug("Ignoring webhook event", zap.String("type", event.Type))
	}
	return nil
}

func decodeUserPayload(raw json.RawMessage) (*whopUserPayload, error) {
	var data whopUserPayload
	if err := json.Unmarshal(raw, &data); err != nil || data.ID == "" {
		return nil, util.ErrInvalidWebhookPayload
	}
	return &data, nil
}

func eventLabel(t string) string {
	switch t {
	case EventUserCreated, EventUserUpdated, EventSubscriptionCreated, EventSubscriptionCancelled:
		return t
	}
	return "other"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
