package app

import (
	"context"
	"gamify_backend/internal/config"
	"gamify_backend/internal/controller"
	"gamify_backend/internal/repository"
	"gamify_backend/internal/service"
	"gamify_backend/pkg/configwatcher"
	"gamify_backend/pkg/database"
	"gamify_backend/pkg/logger"
	"gamify_backend/pkg/monitoring"
	"gamify_backend/pkg/security"
	"gamify_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
}

type services struct {
	user        *service.UserService
	auth        *service.AuthService
	progression *service.ProgressionService
	achievement *service.AchievementService
	dashboard   *service.DashboardService
	webhook     *service.WebhookService
}

type controllers struct {
	auth        *controller.AuthController
	progression *controller.ProgressionController
	dashboard   *controller.DashboardController
	achievement *controller.AchievementController
	webhook     *controller.WebhookController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.user = service.NewUserService(repos.user, cfg.Admin)

	var provider service.IdentityProvider
	if cfg.Whop.Configured() {
		provider = service.NewWhopClient(cfg.Whop)
	} else {
		logger.Log.Warn("Whop OAuth is not configured, only demo login is available")
	}
	s.auth = service.NewAuthService(provider, s.user, cfg.JWT)

	s.achievement = service.NewAchievementService(repos.achievement, repos.user, rdb)
	s.progression = service.NewProgressionService(
		db,
		repos.user,
		repos.progress,
		repos.achievement,
		s.achievement,
		cfg.Gamification,
	)
	s.dashboard = service.NewDashboardService(repos.user, repos.progress, repos.achievement, s.achievement)
	s.webhook = service.NewWebhookService(s.user, cfg.Whop.WebhookSecret)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, a.Config.Server.Mode == gin.ReleaseMode, a.Config.JWT.ExpireTime),
		progression: controller.NewProgressionController(s.progression),
		dashboard:   controller.NewDashboardController(s.dashboard),
		achievement: controller.NewAchievementController(s.achievement),
		webhook:     controller.NewWebhookController(s.webhook),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// prepareDatabase 非 release 模式或指定 -migrate 时迁移，迁移后补齐默认成就
func prepareDatabase(db *gorm.DB, cfg *config.Config) error {
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate || cfg.SeedOnly {
		if err := database.Migrate(db); err != nil {
			return err
		}
		return database.Seed(db)
	}
	return nil
}

// startConfigWatcher 配置文件变化时通知已注册的回调
func (a *App) startConfigWatcher(ctx context.Context) {
	if !a.Config.Server.WatchConfig || a.Config.ConfigFile == "" {
		return
	}

	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := prepareDatabase(db, cfg); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly || cfg.SeedOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(c *config.Config) {
		services.progression.UpdateRewards(c.Gamification)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("gamify-backend", cfg.Server.Mode, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	a.startConfigWatcher(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// 关闭服务
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
