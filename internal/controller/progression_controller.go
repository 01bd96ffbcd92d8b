package controller

import (
	"errors"
	"gamify_backend/internal/leveling"
	"gamify_backend/internal/service"
	"gamify_backend/internal/util"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

type ProgressionController struct {
	ProgressionService *service.ProgressionService
}

func NewProgressionController(progressionService *service.ProgressionService) *ProgressionController {
	return &ProgressionController{ProgressionService: progressionService}
}

// EarnXPRequest amount 省略时使用配置的 xp_per_action
type EarnXPRequest struct {
	ActionType string   `json:"action_type" example:"action"`
	Amount     *float64 `json:"amount" example:"5"`
}

type CompleteQuestRequest struct {
	QuestType string `json:"quest_type" example:"daily"`
}

// bindOptionalJSON 允许空请求体
func bindOptionalJSON(ctx *gin.Context, obj interface{}) error {
	if err := ctx.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// EarnXP godoc
// @Summary 获得经验
// @Description 发放经验，更新等级与当天进度，并检查成就
// @Tags 成长
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EarnXPRequest false "行为类型与经验值"
// @Success 200 {object} util.Response{data=service.Result}
// @Failure 400 {object} util.Response "Invalid amount"
// @Failure 401 {object} util.Response
// @Router /api/earn_xp [post]
func (c *ProgressionController) EarnXP(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EarnXPRequest
	if err := bindOptionalJSON(ctx, &req); err != nil {
		util.BadRequest(ctx, "Invalid amount")
		return
	}

	amount := c.ProgressionService.Rewards().XPPerAction
	if req.Amount != nil {
		// 先校验范围再截断小数，超出 int 的浮点数转换结果不可靠
		if *req.Amount < 1 || *req.Amount >= leveling.MaxXP+1 {
			util.BadRequest(ctx, "Invalid amount")
			return
		}
		amount = int(*req.Amount)
	}
	if amount <= 0 {
		util.BadRequest(ctx, "Invalid amount")
		return
	}

	kind := service.ActionKindAction
	if t := strings.TrimSpace(req.ActionType); t != "" {
		kind = service.ActionKind(t)
	}

	result, err := c.ProgressionService.EarnXP(ctx.Request.Context(), user.UserID, amount, kind)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// CompleteQuest godoc
// @Summary 完成任务
// @Description 完成每日(daily)或每周(weekly)任务，获得经验和积分
// @Tags 成长
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CompleteQuestRequest false "任务类型，默认 daily"
// @Success 200 {object} util.Response{data=service.Result}
// @Failure 400 {object} util.Response "Invalid quest type"
// @Router /api/complete_quest [post]
func (c *ProgressionController) CompleteQuest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteQuestRequest
	if err := bindOptionalJSON(ctx, &req); err != nil {
		util.BadRequest(ctx, "Invalid quest type")
		return
	}
	if req.QuestType == "" {
		req.QuestType = string(service.QuestDaily)
	}

	kind, err := service.ParseQuestKind(req.QuestType)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result, err := c.ProgressionService.CompleteQuest(ctx.Request.Context(), user.UserID, kind)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// CheckAchievements godoc
// @Summary 检查成就
// @Description 立即检查并解锁满足条件的成就
// @Tags 成长
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Result}
// @Router /api/achievements/check [post]
func (c *ProgressionController) CheckAchievements(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ProgressionService.CheckAchievements(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
