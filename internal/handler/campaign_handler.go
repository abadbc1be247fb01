package handler

import (
	"net/http"
	"strconv"

	"github.com/flamefund/ffs/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CampaignHandler 活动相关接口
type CampaignHandler struct {
	campaignLogic   *logic.CampaignLogic
	contributeLogic *logic.ContributeLogic
	engagementLogic *logic.EngagementLogic
}

// NewCampaignHandler 创建活动接口
func NewCampaignHandler(campaignLogic *logic.CampaignLogic, contributeLogic *logic.ContributeLogic, engagementLogic *logic.EngagementLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic:   campaignLogic,
		contributeLogic: contributeLogic,
		engagementLogic: engagementLogic,
	}
}

// CreateCampaignRequest 创建活动请求体
type CreateCampaignRequest struct {
	CreatorWallet      string  `json:"creator_wallet" binding:"required"`
	Title              string  `json:"title" binding:"required"`
	Category           string  `json:"category" binding:"required"`
	Description        string  `json:"description"`
	GoalFiat           float64 `json:"goal_fiat" binding:"required"`
	DurationDays       int     `json:"duration_days"`
	BeneficiaryAddress string  `json:"beneficiary_address"`
	NumMilestones      int     `json:"num_milestones"`
	ImageURL           string  `json:"image_url"`
	VideoURL           string  `json:"video_url"`
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// 默认值与原实现一致：30天、单里程碑、受益人为创建者本人
	if req.DurationDays == 0 {
		req.DurationDays = 30
	}
	if req.NumMilestones == 0 {
		req.NumMilestones = 1
	}
	if req.BeneficiaryAddress == "" {
		req.BeneficiaryAddress = req.CreatorWallet
	}

	result, err := h.campaignLogic.CreateCampaign(c.Request.Context(), logic.CreateCampaignInput{
		CreatorWallet:      req.CreatorWallet,
		Title:              req.Title,
		Category:           req.Category,
		Description:        req.Description,
		GoalFiat:           decimal.NewFromFloat(req.GoalFiat),
		DurationDays:       req.DurationDays,
		BeneficiaryAddress: req.BeneficiaryAddress,
		NumMilestones:      req.NumMilestones,
		ImageURL:           req.ImageURL,
		VideoURL:           req.VideoURL,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{
		"campaign_id":            result.Campaign.CampaignId,
		"creation_fee_burned":    result.CreationFeeBurned,
		"total_deposit_required": result.TotalDepositRequired,
		"transaction_ref":        result.TransactionRef,
	})
}

// ListCampaigns 获取活动列表
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	campaigns, err := h.campaignLogic.ListCampaigns(logic.ListFilter{
		Category: c.DefaultQuery("category", "all"),
		Search:   c.Query("q"),
		SortBy:   c.DefaultQuery("sort", "trending"),
		Limit:    limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"campaigns": campaigns})
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignLogic.GetByCampaignId(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"campaign": campaign})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	stats, err := h.campaignLogic.Stats(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": stats})
}

// GetCampaignMilestones 获取活动里程碑
func (h *CampaignHandler) GetCampaignMilestones(c *gin.Context) {
	milestones, err := h.campaignLogic.Milestones(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"milestones": milestones})
}

// GetCampaignContributions 获取活动贡献记录
func (h *CampaignHandler) GetCampaignContributions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	contributions, total, err := h.contributeLogic.ContributionsByCampaign(c.Param("id"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	totalPage := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		totalPage++
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"contributions": contributions,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// PostUpdateRequest 发布活动更新请求体
type PostUpdateRequest struct {
	AuthorWallet string `json:"author_wallet" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required"`
	ImageURL     string `json:"image_url"`
}

// PostUpdate 发布活动更新（仅创建者）
func (h *CampaignHandler) PostUpdate(c *gin.Context) {
	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	update, err := h.engagementLogic.PostUpdate(c.Param("id"), req.AuthorWallet, req.Title, req.Content, req.ImageURL)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "更新已发布", gin.H{"update_id": update.Id})
}

// GetUpdates 获取活动更新列表
func (h *CampaignHandler) GetUpdates(c *gin.Context) {
	updates, err := h.engagementLogic.Updates(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"updates": updates})
}

// PostCommentRequest 发布留言请求体
type PostCommentRequest struct {
	AuthorWallet string `json:"author_wallet" binding:"required"`
	Content      string `json:"content" binding:"required"`
}

// PostComment 发布留言
func (h *CampaignHandler) PostComment(c *gin.Context) {
	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.engagementLogic.PostComment(c.Param("id"), req.AuthorWallet, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "留言已发布", gin.H{"comment_id": comment.Id})
}

// GetComments 获取活动留言
func (h *CampaignHandler) GetComments(c *gin.Context) {
	comments, err := h.engagementLogic.Comments(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"comments": comments})
}
