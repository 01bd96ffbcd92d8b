package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrAchievementNotFound     = errors.New("achievement not found")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidQuestKind        = errors.New("invalid quest type")
	ErrInvalidRequirement      = errors.New("invalid achievement requirement")
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload   = errors.New("invalid webhook payload")
	ErrWhopNotConfigured       = errors.New("whop integration is not configured")
	ErrInvalidOAuthState       = errors.New("invalid or expired oauth state")
	ErrMissingAuthCode         = errors.New("authorization code not provided")
	ErrPermissionDenied        = errors.New("permission denied")

	// ErrRetryable 包装存储层的瞬时失败，调用方可以重试
	ErrRetryable = errors.New("temporary storage failure, please retry")
)
