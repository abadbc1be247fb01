package handler

import (
	"net/http"

	"github.com/flamefund/ffs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ContributeHandler 贡献接口
type ContributeHandler struct {
	contributeLogic *logic.ContributeLogic
}

// NewContributeHandler 创建贡献接口
func NewContributeHandler(contributeLogic *logic.ContributeLogic) *ContributeHandler {
	return &ContributeHandler{contributeLogic: contributeLogic}
}

// ContributeRequest 贡献请求体
type ContributeRequest struct {
	CampaignId        string  `json:"campaign_id" binding:"required"`
	ContributorWallet string  `json:"contributor_wallet" binding:"required"`
	AmountNative      float64 `json:"amount_native" binding:"required"`
	Comment           string  `json:"comment"`
}

// Contribute 发起贡献
func (h *ContributeHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.contributeLogic.Contribute(c.Request.Context(), logic.ContributeInput{
		CampaignId:        req.CampaignId,
		ContributorWallet: req.ContributorWallet,
		AmountNative:      decimal.NewFromFloat(req.AmountNative),
		Comment:           req.Comment,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	achievements := make([]gin.H, 0, len(result.NewAchievements))
	for _, ach := range result.NewAchievements {
		achievements = append(achievements, gin.H{
			"type": ach.AchievementType,
			"name": ach.AchievementName,
			"tier": ach.BadgeTier,
		})
	}

	SuccessResponse(c, http.StatusCreated, "贡献成功", gin.H{
		"transaction_ref":    result.TransactionRef,
		"burned_native":      result.BurnedNative,
		"to_campaign_native": result.ToCampaignNative,
		"new_achievements":   achievements,
	})
}
