package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"gamify_backend/internal/config"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestWebhook(t *testing.T, secret string) (*WebhookService, *repository.UserRepository) {
	t.Helper()
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	return NewWebhookService(NewUserService(repo, config.AdminConfig{}), secret), repo
}

func TestWebhookService_VerifySignature(t *testing.T) {
	svc, _ := newTestWebhook(t, webhookSecret)
	body := []byte(`{"type":"user.created","data":{"id":"u1"}}`)

	assert.NoError(t, svc.VerifySignature(body, sign(webhookSecret, body)))
	assert.ErrorIs(t, svc.VerifySignature(body, sign("other", body)), util.ErrInvalidWebhookSignature)
	assert.ErrorIs(t, svc.VerifySignature(body, ""), util.ErrInvalidWebhookSignature)
	assert.ErrorIs(t, svc.VerifySignature(append(body, ' '), sign(webhookSecret, body)), util.ErrInvalidWebhookSignature)

	unconfigured, _ := newTestWebhook(t, "")
	assert.ErrorIs(t, unconfigured.VerifySignature(body, sign("", body)), util.ErrInvalidWebhookSignature)
}

func TestWebhookService_UserLifecycle(t *testing.T) {
	svc, repo := newTestWebhook(t, webhookSecret)
	ctx := context.Background()

	eventType, err := svc.Handle(ctx, []byte(`{"type":"user.created","data":{"id":"u1","username":"alice","email":"a@example.com"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventUserCreated, eventType)

	user, err := repo.FindByWhopID("u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 0, user.XP)
	assert.Equal(t, 0, user.Level)

	// 重复的 user.created 不覆盖已有数据
	_, err = svc.Handle(ctx, []byte(`{"type":"user.created","data":{"id":"u1","username":"mallory"}}`))
	require.NoError(t, err)
	user, _ = repo.FindByWhopID("u1")
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Handle(ctx, []byte(`{"type":"user.updated","data":{"id":"u1","email":"new@example.com"}}`))
	require.NoError(t, err)
	user, _ = repo.FindByWhopID("u1")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestWebhookService_CreatedFallsBackToEmail(t *testing.T) {
	svc, repo := newTestWebhook(t, webhookSecret)

	_, err := svc.Handle(context.Background(), []byte(`{"type":"user.created","data":{"id":"u2","email":"b@example.com"}}`))
	require.NoError(t, err)

	user, err := repo.FindByWhopID("u2")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", user.Username)
}

func TestWebhookService_IgnoredEvents(t *testing.T) {
	svc, repo := newTestWebhook(t, webhookSecret)
	ctx := context.Background()

	for _, body := range []string{
		`{"type":"user.updated","data":{"id":"ghost","username":"x"}}`,
		`{"type":"subscription.created","data":{"id":"sub_1"}}`,
		`{"type":"subscription.cancelled","data":{"id":"sub_1"}}`,
		`{"type":"payment.succeeded","data":{}}`,
	} {
		_, err := svc.Handle(ctx, []byte(body))
		assert.NoError(t, err, body)
	}

	_, err := repo.FindByWhopID("ghost")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestWebhookService_InvalidPayload(t *testing.T) {
	svc, _ := newTestWebhook(t, webhookSecret)
	ctx := context.Background()

	for _, body := range []string{
		`not json`,
		`{"data":{}}`,
		`{"type":"user.created","data":{}}`,
		`{"type":"user.updated","data":"oops"}`,
	} {
		_, err := svc.Handle(ctx, []byte(body))
		assert.ErrorIs(t, err, util.ErrInvalidWebhookPayload, body)
	}
}
