package app

import (
	"gamify_backend/docs"
	"gamify_backend/internal/config"
	"gamify_backend/internal/middleware"
	"gamify_backend/internal/model"
	"gamify_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/achievements", c.achievement.CreateAchievement)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/demo_login", c.auth.DemoLogin)
	}

	// Whop OAuth
	auth := router.Group("/auth/whop")
	{
		auth.GET("", c.auth.WhopLogin)
		auth.GET("/callback", c.auth.WhopCallback)
	}

	// Webhook 依赖签名校验，不走 JWT
	router.POST("/webhook/whop", c.webhook.HandleWhop)
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/earn_xp", c.progression.EarnXP)
	rg.POST("/complete_quest", c.progression.CompleteQuest)

	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.GET("/profile", c.dashboard.GetProfile)

	// 成就/排行
	rg.GET("/achievements", c.achievement.ListAchievements)
	rg.POST("/achievements/check", c.progression.CheckAchievements)
	rg.GET("/leaderboard", c.achievement.GetLeaderboard)
}
