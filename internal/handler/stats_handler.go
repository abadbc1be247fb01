package handler

import (
	"net/http"
	"strconv"

	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StatsHandler 排行榜、销毁统计与活动流接口
type StatsHandler struct {
	rankingLogic   *logic.RankingLogic
	burnStatsLogic *logic.BurnStatsLogic
	activityLogic  *logic.ActivityLogic
	ledgerCfg      config.LedgerConfig
	oracleCfg      config.OracleConfig
}

// NewStatsHandler 创建统计接口
func NewStatsHandler(rankingLogic *logic.RankingLogic, burnStatsLogic *logic.BurnStatsLogic, activityLogic *logic.ActivityLogic, ledgerCfg config.LedgerConfig, oracleCfg config.OracleConfig) *StatsHandler {
	return &StatsHandler{
		rankingLogic:   rankingLogic,
		burnStatsLogic: burnStatsLogic,
		activityLogic:  activityLogic,
		ledgerCfg:      ledgerCfg,
		oracleCfg:      oracleCfg,
	}
}

// GetLeaderboard 获取贡献者排行榜
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	ranked, err := h.rankingLogic.TopContributors(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"leaderboard": ranked})
}

// GetBurnStats 获取销毁统计历史
func (h *StatsHandler) GetBurnStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	history, err := h.burnStatsLogic.History(days)
	if err != nil {
		HandleError(c, err)
		return
	}
	total, err := h.burnStatsLogic.TotalBurned()
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"history":      history,
		"total_burned": total,
	})
}

// BurnProjectionRequest 销毁量预测请求体
type BurnProjectionRequest struct {
	DailyVolumeNative float64 `json:"daily_volume_native"`
	CampaignsPerDay   int     `json:"campaigns_per_day"`
	AvgCreationFee    float64 `json:"avg_creation_fee"`
	ProjectionDays    int     `json:"projection_days"`
}

// GetBurnProjections 计算销毁量预测
func (h *StatsHandler) GetBurnProjections(c *gin.Context) {
	var req BurnProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.AvgCreationFee == 0 {
		req.AvgCreationFee = h.ledgerCfg.DefaultCreationFee
	}
	if req.ProjectionDays == 0 {
		req.ProjectionDays = 365
	}

	projection := logic.Project(
		decimal.NewFromFloat(req.DailyVolumeNative),
		req.CampaignsPerDay,
		decimal.NewFromFloat(req.AvgCreationFee),
		h.ledgerCfg.BurnRateDecimal(),
		decimal.NewFromFloat(h.oracleCfg.FixedPrice),
		req.ProjectionDays,
	)
	SuccessResponse(c, http.StatusOK, "", projection)
}

// GetActivityFeed 获取最近贡献活动流
func (h *StatsHandler) GetActivityFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.activityLogic.Recent(limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"activities": activities})
}
