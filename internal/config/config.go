package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Log          LogConfig `mapstructure:"log"`
	Database     DatabaseConfig
	JWT          JWTConfig
	Whop         WhopConfig         `mapstructure:"whop"`
	Gamification GamificationConfig `mapstructure:"gamification"`
	Admin        AdminConfig        `mapstructure:"admin"`
	Tracing      TracingConfig      `mapstructure:"tracing"`
	Redis        RedisConfig
	CORS         CORSConfig      `mapstructure:"cors"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool   `mapstructure:"-"`
	MigrateOnly  bool   `mapstructure:"-"`
	SeedOnly     bool   `mapstructure:"-"`
	ConfigFile   string `mapstructure:"-"`
}

type ServerConfig struct {
	Port        string
	Mode        string
	WatchConfig bool `mapstructure:"watch_config"`
}

// LogConfig Level 为空时按 server.mode 决定
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DatabaseConfig Driver 取值 mysql 或 sqlite，sqlite 时只使用 DSN
type DatabaseConfig struct {
	Driver    string
	DSN       string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	Debug     bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type WhopConfig struct {
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
	RedirectURI   string `mapstructure:"redirect_uri"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	AuthURL       string `mapstructure:"auth_url"`
	TokenURL      string `mapstructure:"token_url"`
	APIBaseURL    string `mapstructure:"api_base_url"`
}

// Configured 是否具备发起 OAuth 的最少配置
func (w WhopConfig) Configured() bool {
	return w.ClientID != "" && w.RedirectURI != ""
}

// GamificationConfig 经验值与任务奖励，支持热更新
type GamificationConfig struct {
	XPPerAction       int `mapstructure:"xp_per_action"`
	DailyQuestXP      int `mapstructure:"daily_quest_xp"`
	WeeklyQuestXP     int `mapstructure:"weekly_quest_xp"`
	DailyQuestPoints  int `mapstructure:"daily_quest_points"`
	WeeklyQuestPoints int `mapstructure:"weekly_quest_points"`
}

// DefaultGamification 默认奖励
func DefaultGamification() GamificationConfig {
	return GamificationConfig{
		XPPerAction:       5,
		DailyQuestXP:      25,
		WeeklyQuestXP:     100,
		DailyQuestPoints:  1,
		WeeklyQuestPoints: 5,
	}
}

type AdminConfig struct {
	WhopUserIDs []string `mapstructure:"whop_user_ids"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	def := DefaultGamification()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "whop_gamify.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("whop.auth_url", "https://whop.com/oauth/authorize")
	v.SetDefault("whop.token_url", "https://whop.com/oauth/token")
	v.SetDefault("whop.api_base_url", "https://api.whop.com/v1")
	v.SetDefault("gamification.xp_per_action", def.XPPerAction)
	v.SetDefault("gamification.daily_quest_xp", def.DailyQuestXP)
	v.SetDefault("gamification.weekly_quest_xp", def.WeeklyQuestXP)
	v.SetDefault("gamification.daily_quest_points", def.DailyQuestPoints)
	v.SetDefault("gamification.weekly_quest_points", def.WeeklyQuestPoints)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GAMIFY")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Whop
	v.BindEnv("whop.client_id", "WHOP_CLIENT_ID")
	v.BindEnv("whop.client_secret", "WHOP_CLIENT_SECRET")
	v.BindEnv("whop.redirect_uri", "WHOP_REDIRECT_URI")
	v.BindEnv("whop.webhook_secret", "WHOP_WEBHOOK_SECRET")

	// Gamification
	v.BindEnv("gamification.xp_per_action", "XP_PER_ACTION")
	v.BindEnv("gamification.daily_quest_xp", "XP_PER_DAILY_QUEST")
	v.BindEnv("gamification.weekly_quest_xp", "XP_PER_WEEKLY_QUEST")
	v.BindEnv("gamification.daily_quest_points", "POINTS_PER_DAILY_QUEST")
	v.BindEnv("gamification.weekly_quest_points", "POINTS_PER_WEEKLY_QUEST")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Gamification.Validate(); err != nil {
		return nil, err
	}

	// 生产环境校验密钥强度
	if cfg.Server.Mode == "release" {
		if len(cfg.JWT.Secret) < 32 {
			return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
		}
		if cfg.Whop.WebhookSecret == "" {
			return nil, fmt.Errorf("whop webhook secret must be configured in release mode")
		}
	}

	return &cfg, nil
}

// Validate 奖励必须为正数，否则任务会变成空操作
func (g GamificationConfig) Validate() error {
	if g.XPPerAction <= 0 || g.DailyQuestXP <= 0 || g.WeeklyQuestXP <= 0 {
		return fmt.Errorf("gamification xp rewards must be positive: %+v", g)
	}
	if g.DailyQuestPoints < 0 || g.WeeklyQuestPoints < 0 {
		return fmt.Errorf("gamification point rewards must not be negative: %+v", g)
	}
	return nil
}
