package router

import (
	"github.com/flamefund/ffs/internal/cache"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/handler"
	"github.com/flamefund/ffs/internal/identity"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/flamefund/ffs/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps 路由依赖
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Oracle pricing.Oracle
	IdGen  identity.Generator
	Cache  *cache.Cache
}

// Logics 业务逻辑集合，路由与调度任务共用
type Logics struct {
	Campaign   *logic.CampaignLogic
	Contribute *logic.ContributeLogic
	User       *logic.UserLogic
	Ranking    *logic.RankingLogic
	BurnStats  *logic.BurnStatsLogic
	Activity   *logic.ActivityLogic
	Engagement *logic.EngagementLogic
}

// BuildLogics 装配业务逻辑
func BuildLogics(deps Deps) *Logics {
	oracleTimeout := deps.Config.Oracle.Timeout()
	burnStats := logic.NewBurnStatsLogic(deps.DB)
	achievements := logic.NewAchievementLogic(deps.DB, deps.Config.Ledger)

	return &Logics{
		Campaign:   logic.NewCampaignLogic(deps.DB, deps.Config.Ledger, deps.Oracle, deps.IdGen, burnStats, oracleTimeout),
		Contribute: logic.NewContributeLogic(deps.DB, deps.Config.Ledger, deps.Oracle, deps.IdGen, burnStats, achievements, oracleTimeout),
		User:       logic.NewUserLogic(deps.DB),
		Ranking:    logic.NewRankingLogic(deps.DB, deps.Cache),
		BurnStats:  burnStats,
		Activity:   logic.NewActivityLogic(deps.DB),
		Engagement: logic.NewEngagementLogic(deps.DB),
	}
}

// Setup 初始化路由
func Setup(deps Deps, logics *Logics) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查与指标
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fundburn-service",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	campaignHandler := handler.NewCampaignHandler(logics.Campaign, logics.Contribute, logics.Engagement)
	contributeHandler := handler.NewContributeHandler(logics.Contribute)
	statsHandler := handler.NewStatsHandler(logics.Ranking, logics.BurnStats, logics.Activity, deps.Config.Ledger, deps.Config.Oracle)
	userHandler := handler.NewUserHandler(logics.User, logics.Ranking, deps.IdGen)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:id/milestones", campaignHandler.GetCampaignMilestones)
			campaigns.GET("/:id/contributions", campaignHandler.GetCampaignContributions)
			campaigns.POST("/:id/updates", campaignHandler.PostUpdate)
			campaigns.GET("/:id/updates", campaignHandler.GetUpdates)
			campaigns.POST("/:id/comments", campaignHandler.PostComment)
			campaigns.GET("/:id/comments", campaignHandler.GetComments)
		}

		v1.POST("/contributions", contributeHandler.Contribute)
		v1.GET("/leaderboard", statsHandler.GetLeaderboard)
		v1.GET("/burns", statsHandler.GetBurnStats)
		v1.POST("/burns/projections", statsHandler.GetBurnProjections)
		v1.GET("/activity", statsHandler.GetActivityFeed)
		v1.POST("/wallet/connect", userHandler.ConnectWallet)
		v1.GET("/users/:address", userHandler.GetProfile)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
