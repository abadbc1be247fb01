package main

import (
	"log"

	"github.com/flamefund/ffs/internal/cache"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/database"
	"github.com/flamefund/ffs/internal/identity"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/flamefund/ffs/internal/monitor"
	"github.com/flamefund/ffs/internal/pricing"
	"github.com/flamefund/ffs/internal/router"
	"github.com/flamefund/ffs/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if err := logger.Configure(level, cfg.Log.Output, cfg.Log.File); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化业务指标
	monitor.InitBusinessMetrics()

	// 初始化排行榜缓存
	leaderboardCache := cache.New(cfg.Redis)
	defer leaderboardCache.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 装配依赖与路由
	deps := router.Deps{
		DB:     db,
		Config: cfg,
		Oracle: pricing.NewFixed(cfg.Oracle.FixedPrice),
		IdGen:  identity.NewRandom(),
		Cache:  leaderboardCache,
	}
	logics := router.BuildLogics(deps)
	r := router.Setup(deps, logics)

	// 启动定时任务
	manager := scheduler.Start(cfg, logics.Campaign)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
