// @title Whop Gamify 后端 API
// @version 1.0
// @description Whop 社区成员的经验、等级、连续天数与成就服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"errors"
	"flag"
	"gamify_backend/internal/app"
	"gamify_backend/internal/config"
	"gamify_backend/pkg/logger"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	seed := flag.Bool("seed", false, "迁移并写入默认成就后退出")
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	// .env 可选，已存在的环境变量优先
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly || *seed
	cfg.MigrateOnly = *migrateOnly
	cfg.SeedOnly = *seed

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if cfg.MigrateOnly || cfg.SeedOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	application.Run()
}
