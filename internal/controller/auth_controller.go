package controller

import (
	"gamify_backend/internal/service"
	"gamify_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool // 是否为生产环境
	TokenTTL    time.Duration
}

func NewAuthController(authService *service.AuthService, isRelease bool, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		AuthService: authService,
		IsRelease:   isRelease,
		TokenTTL:    tokenTTL,
	}
}

type DemoLoginRequest struct {
	Username string `json:"username" example:"DemoUser"`
	Email    string `json:"email" example:"demo@example.com"`
}

// oauthStateMaxAge 与服务端 state 有效期一致
const oauthStateMaxAge = 10 * 60

// Lax 下跨站 POST 不携带登录态，Whop 回调的顶层跳转仍会携带 state cookie
func (c *AuthController) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.TokenCookieName, token, int(c.TokenTTL.Seconds()), "/", "", c.IsRelease, true)
}

func (c *AuthController) setStateCookie(ctx *gin.Context, state string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.OAuthStateCookieName, state, maxAge, "/auth/whop", "", c.IsRelease, true)
}

// WhopLogin godoc
// @Summary Whop 登录
// @Description 跳转到 Whop OAuth 授权页
// @Tags 认证
// @Success 302
// @Failure 503 {object} util.Response "Whop 未配置"
// @Router /auth/whop [get]
func (c *AuthController) WhopLogin(ctx *gin.Context) {
	authURL, state, err := c.AuthService.BeginLogin()
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.setStateCookie(ctx, state, oauthStateMaxAge)
	ctx.Redirect(http.StatusFound, authURL)
}

// WhopCallback godoc
// @Summary Whop 授权回调
// @Description 校验 state 与登录时写入的 cookie，用授权码换取用户资料并签发令牌
// @Tags 认证
// @Produce json
// @Param code query string true "授权码"
// @Param state query string true "登录时下发的 state"
// @Success 200 {object} util.Response{data=service.LoginResult}
// @Failure 400 {object} util.Response
// @Router /auth/whop/callback [get]
func (c *AuthController) WhopCallback(ctx *gin.Context) {
	if errMsg := ctx.Query("error"); errMsg != "" {
		util.BadRequest(ctx, "OAuth error: "+errMsg)
		return
	}

	boundState, _ := ctx.Cookie(util.OAuthStateCookieName)
	c.setStateCookie(ctx, "", -1)

	result, err := c.AuthService.CompleteLogin(ctx.Request.Context(), ctx.Query("code"), ctx.Query("state"), boundState)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, result.Token)
	util.Success(ctx, result)
}

// DemoLogin godoc
// @Summary 演示登录
// @Description 无需 Whop 账号，创建或复用演示用户
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body DemoLoginRequest false "演示用户资料"
// @Success 200 {object} util.Response{data=service.LoginResult}
// @Router /api/demo_login [post]
func (c *AuthController) DemoLogin(ctx *gin.Context) {
	var req DemoLoginRequest
	if err := bindOptionalJSON(ctx, &req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.DemoLogin(ctx.Request.Context(), req.Username, req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, result.Token)
	util.Success(ctx, result)
}
