package controller

import (
	"errors"
	"gamify_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把领域错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidAmount):
		util.BadRequest(ctx, "Invalid amount")
	case errors.Is(err, util.ErrInvalidQuestKind):
		util.BadRequest(ctx, "Invalid quest type")
	case errors.Is(err, util.ErrInvalidRequirement),
		errors.Is(err, util.ErrInvalidWebhookPayload),
		errors.Is(err, util.ErrMissingAuthCode),
		errors.Is(err, util.ErrInvalidOAuthState):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound), errors.Is(err, util.ErrAchievementNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidWebhookSignature):
		util.Error(ctx, http.StatusUnauthorized, "Invalid signature")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrWhopNotConfigured):
		util.ServiceUnavailable(ctx, "Whop integration is not configured")
	case errors.Is(err, util.ErrRetryable):
		util.ServiceUnavailable(ctx, "Temporarily unavailable, please retry")
	default:
		util.LogInternalError(ctx, err)
	}
}
