package controller

import (
	"gamify_backend/internal/service"
	"gamify_backend/internal/util"
	"gamify_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WebhookController struct {
	WebhookService *service.WebhookService
}

func NewWebhookController(webhookService *service.WebhookService) *WebhookController {
	return &WebhookController{WebhookService: webhookService}
}

// HandleWhop godoc
// @Summary Whop Webhook
// @Description 接收 Whop 事件，签名为 HMAC-SHA256(body) 的十六进制
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Whop-Signature header string true "签名"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Invalid signature"
// @Router /webhook/whop [post]
func (c *WebhookController) HandleWhop(ctx *gin.Context) {
	payload, err := ctx.GetRawData()
	if err != nil {
		util.BadRequest(ctx, "Unable to read body")
		return
	}

	if err := c.WebhookService.VerifySignature(payload, ctx.GetHeader(util.WhopSignatureHeader)); err != nil {
		logger.Log.Warn("Rejected webhook", zap.String("client_ip", ctx.ClientIP()))
		respondError(ctx, err)
		return
	}

	eventType, err := c.WebhookService.Handle(ctx.Request.Context(), payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": "success", "type": eventType})
}
