package handler

import (
	"net/http"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/identity"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/gin-gonic/gin"
)

// UserHandler 用户与钱包接口
type UserHandler struct {
	userLogic    *logic.UserLogic
	rankingLogic *logic.RankingLogic
	idgen        identity.Generator
}

// NewUserHandler 创建用户接口
func NewUserHandler(userLogic *logic.UserLogic, rankingLogic *logic.RankingLogic, idgen identity.Generator) *UserHandler {
	return &UserHandler{
		userLogic:    userLogic,
		rankingLogic: rankingLogic,
		idgen:        idgen,
	}
}

// ConnectWalletRequest 连接钱包请求体
type ConnectWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// ConnectWallet 连接钱包：按地址惰性建档，未提供地址时生成演示地址
// 签名校验不在账本范围内，地址真实性视为外部事实
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	wallet := req.WalletAddress
	if wallet == "" {
		wallet = h.idgen.NewWalletAddress()
	}
	if !identity.ValidAddress(wallet) {
		HandleError(c, apperr.Validation("钱包地址不合法"))
		return
	}

	user, err := h.userLogic.GetOrCreateUser(wallet)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"wallet_address":  user.WalletAddress,
		"display_address": user.DisplayAddress(),
	})
}

// GetProfile 获取用户主页数据
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userLogic.GetProfile(c.Param("address"))
	if err != nil {
		HandleError(c, err)
		return
	}

	rank, err := h.rankingLogic.UserRank(profile.User.Id)
	if err != nil {
		HandleError(c, err)
		return
	}
	profile.Rank = rank

	SuccessResponse(c, http.StatusOK, "", gin.H{"profile": profile})
}
