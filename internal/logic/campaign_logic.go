package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/identity"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/flamefund/ffs/internal/model"
	"github.com/flamefund/ffs/internal/monitor"
	"github.com/flamefund/ffs/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignLogic 活动账本：活动与里程碑记录的唯一属主
type CampaignLogic struct {
	db        *gorm.DB
	cfg       config.LedgerConfig
	oracle    pricing.Oracle
	idgen     identity.Generator
	burnStats *BurnStatsLogic
	timeout   time.Duration
}

// NewCampaignLogic 创建活动账本
func NewCampaignLogic(db *gorm.DB, cfg config.LedgerConfig, oracle pricing.Oracle, idgen identity.Generator, burnStats *BurnStatsLogic, oracleTimeout time.Duration) *CampaignLogic {
	return &CampaignLogic{
		db:        db,
		cfg:       cfg,
		oracle:    oracle,
		idgen:     idgen,
		burnStats: burnStats,
		timeout:   oracleTimeout,
	}
}

// CreateCampaignInput 创建活动请求
type CreateCampaignInput struct {
	CreatorWallet      string
	Title              string
	Category           string
	Description        string
	GoalFiat           decimal.Decimal
	DurationDays       int
	BeneficiaryAddress string
	NumMilestones      int
	ImageURL           string
	VideoURL           string
}

// CreateCampaignResult 创建活动结果
type CreateCampaignResult struct {
	Campaign             *model.Campaign `json:"campaign"`
	CreationFeeBurned    decimal.Decimal `json:"creation_fee_burned"`
	TotalDepositRequired decimal.Decimal `json:"total_deposit_required"`
	TransactionRef       string          `json:"transaction_ref"`
}

// CreateCampaign 创建活动
// 原生目标按创建时价格换算后冻结；创建费全额销毁并计入当日统计
func (c *CampaignLogic) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*CreateCampaignResult, error) {
	if err := c.validateCreate(input); err != nil {
		return nil, err
	}

	// 价格查询是唯一的外部阻塞点，放在事务外
	price, err := pricing.WithTimeout(ctx, c.oracle, c.timeout)
	if err != nil {
		return nil, err
	}

	goalNative := input.GoalFiat.Div(price)
	creationFee := c.cfg.CreationFee(input.Category)
	schedule := MilestoneSchedule(goalNative, input.NumMilestones)
	depositPerStage := goalNative.DivRound(decimal.NewFromInt(int64(input.NumMilestones)), 18)
	totalDeposit := depositPerStage.Mul(decimal.NewFromInt(int64(input.NumMilestones)))

	now := time.Now()
	campaign := &model.Campaign{
		CampaignId:             c.idgen.NewCampaignID(),
		Title:                  input.Title,
		Category:               input.Category,
		Description:            input.Description,
		BeneficiaryAddress:     input.BeneficiaryAddress,
		GoalFiat:               input.GoalFiat,
		GoalNative:             goalNative,
		DurationDays:           input.DurationDays,
		NumMilestones:          input.NumMilestones,
		CreatorDepositPerStage: depositPerStage,
		TotalCreatorDeposit:    totalDeposit,
		EndsAt:                 now.Add(time.Duration(input.DurationDays) * 24 * time.Hour),
		IsActive:               true,
		CreationFeeBurned:      creationFee,
		ImageURL:               input.ImageURL,
		VideoURL:               input.VideoURL,
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		creator, txErr := getOrCreateUserTx(tx, input.CreatorWallet)
		if txErr != nil {
			return txErr
		}
		campaign.CreatorId = creator.Id

		if txErr := tx.Create(campaign).Error; txErr != nil {
			// 短ID撞库极小概率发生，按竞争冲突上抛由调用方重试
			if strings.Contains(txErr.Error(), "duplicate") || strings.Contains(txErr.Error(), "unique") {
				return apperr.Conflict("campaign id collision", txErr)
			}
			return apperr.Dependency("create campaign failed", txErr)
		}

		for i, required := range schedule {
			milestone := model.Milestone{
				CampaignId:           campaign.Id,
				StageNumber:          i + 1,
				Title:                fmt.Sprintf("Milestone %d", i+1),
				RequiredAmountNative: required,
				CreatorDepositNative: depositPerStage,
			}
			if txErr := tx.Create(&milestone).Error; txErr != nil {
				return apperr.Dependency("create milestone failed", txErr)
			}
		}

		if txErr := tx.Model(&model.User{}).Where("id = ?", creator.Id).
			Update("campaigns_created", gorm.Expr("campaigns_created + 1")).Error; txErr != nil {
			return apperr.Dependency("update creator stats failed", txErr)
		}

		return c.burnStats.RecordTx(tx, decimal.Zero, creationFee, now)
	})
	if err != nil {
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.CampaignsCreated.WithLabelValues(input.Category).Inc()
	}
	logger.Info("Campaign %s created: goal %s native, fee %s burned",
		campaign.CampaignId, goalNative.String(), creationFee.String())

	return &CreateCampaignResult{
		Campaign:             campaign,
		CreationFeeBurned:    creationFee,
		TotalDepositRequired: totalDeposit,
		TransactionRef:       c.idgen.NewTransactionRef(),
	}, nil
}

// validateCreate 校验创建请求
func (c *CampaignLogic) validateCreate(input CreateCampaignInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperr.Validation("活动标题不能为空")
	}
	if strings.TrimSpace(input.Category) == "" {
		return apperr.Validation("活动类别不能为空")
	}
	if !input.GoalFiat.IsPositive() {
		return apperr.Validation("目标金额必须大于0")
	}
	if input.DurationDays < 1 {
		return apperr.Validation("活动时长至少1天")
	}
	if input.NumMilestones < 1 {
		return apperr.Validation("里程碑数量至少为1")
	}
	if !identity.ValidAddress(input.CreatorWallet) {
		return apperr.Validation("创建者钱包地址不合法")
	}
	if !identity.ValidAddress(input.BeneficiaryAddress) {
		return apperr.Validation("受益人地址不合法")
	}
	return nil
}

// GetByCampaignId 按对外短ID查询活动
func (c *CampaignLogic) GetByCampaignId(campaignId string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("campaign %s not found", campaignId)
		}
		return nil, apperr.Dependency("query campaign failed", err)
	}
	return &campaign, nil
}

// ListFilter 活动列表筛选条件
type ListFilter struct {
	Category string
	Search   string
	SortBy   string // trending, new, ending, popular
	Limit    int
}

// ListCampaigns 按筛选条件列出进行中的活动
func (c *CampaignLogic) ListCampaigns(filter ListFilter) ([]model.Campaign, error) {
	query := c.db.Where("is_active = ?", true)
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	switch filter.SortBy {
	case "new":
		query = query.Order("created_at DESC")
	case "ending":
		query = query.Where("ends_at > ?", time.Now()).Order("ends_at ASC")
	case "popular":
		query = query.Order("supporter_count DESC")
	default: // trending
		query = query.Order("contribution_velocity DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var campaigns []model.Campaign
	if err := query.Limit(limit).Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("查询活动列表失败: %w", err)
	}
	return campaigns, nil
}

// Milestones 返回活动的里程碑，按阶段号排序
func (c *CampaignLogic) Milestones(campaignId string) ([]model.Milestone, error) {
	campaign, err := c.GetByCampaignId(campaignId)
	if err != nil {
		return nil, err
	}
	var milestones []model.Milestone
	if err := c.db.Where("campaign_id = ?", campaign.Id).
		Order("stage_number ASC").
		Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("查询里程碑失败: %w", err)
	}
	return milestones, nil
}

// CampaignStats 活动统计视图，全部为计算值
type CampaignStats struct {
	CampaignId      string          `json:"campaign_id"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	CurrentStage    int             `json:"current_stage"`
	ReleasePercent  int             `json:"release_percent"`
	IsSuccessful    bool            `json:"is_successful"`
	IsEnded         bool            `json:"is_ended"`
	DaysRemaining   int             `json:"days_remaining"`
	Velocity        decimal.Decimal `json:"velocity"`
	SupporterCount  int64           `json:"supporter_count"`
	RaisedNative    decimal.Decimal `json:"raised_native"`
	RaisedFiat      decimal.Decimal `json:"raised_fiat"`
	BurnedNative    decimal.Decimal `json:"burned_native"`
	GoalNative      decimal.Decimal `json:"goal_native"`
}

// Stats 计算活动统计信息
func (c *CampaignLogic) Stats(campaignId string) (*CampaignStats, error) {
	campaign, err := c.GetByCampaignId(campaignId)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	stage := campaign.CurrentStage()
	return &CampaignStats{
		CampaignId:      campaign.CampaignId,
		ProgressPercent: campaign.ProgressPercent(),
		CurrentStage:    stage,
		ReleasePercent:  ReleasePercent(stage, c.cfg.MilestoneReleases),
		IsSuccessful:    campaign.IsSuccessful(),
		IsEnded:         campaign.IsEnded(now),
		DaysRemaining:   campaign.DaysRemaining(now),
		Velocity:        Velocity(campaign.TotalRaisedNative, campaign.CreatedAt, now),
		SupporterCount:  campaign.SupporterCount,
		RaisedNative:    campaign.TotalRaisedNative,
		RaisedFiat:      campaign.TotalRaisedFiat,
		BurnedNative:    campaign.TotalBurnedNative,
		GoalNative:      campaign.GoalNative,
	}, nil
}

// ReleaseDueMilestones 释放已达标里程碑的资金
// 里程碑的所需金额被募集总额覆盖即视为完成，释放比例取当前进度阶段对应的表值
// 通过 WHERE is_completed = false 保证幂等，由调度任务周期触发
func (c *CampaignLogic) ReleaseDueMilestones(campaign *model.Campaign, now time.Time) (int, error) {
	stage := campaign.CurrentStage()
	if stage == 0 {
		return 0, nil
	}
	pct := ReleasePercent(stage, c.cfg.MilestoneReleases)

	released := 0
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var due []model.Milestone
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ? AND is_completed = ? AND required_amount_native <= ?",
				campaign.Id, false, campaign.TotalRaisedNative).
			Order("stage_number ASC").
			Find(&due).Error; err != nil {
			return apperr.Dependency("query due milestones failed", err)
		}

		for _, milestone := range due {
			if err := tx.Model(&model.Milestone{}).
				Where("id = ? AND is_completed = ?", milestone.Id, false).
				Updates(map[string]interface{}{
					"is_completed":      true,
					"completed_at":      now,
					"funds_released":    true,
					"released_percent":  pct,
					"funds_released_at": now,
				}).Error; err != nil {
				return apperr.Dependency("release milestone failed", err)
			}
			released++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if released > 0 {
		if monitor.Business != nil {
			monitor.Business.MilestonesReleased.Add(float64(released))
		}
		logger.Info("Campaign %s: released %d milestone(s) at stage %d (%d%%)",
			campaign.CampaignId, released, stage, pct)
	}
	return released, nil
}

// ActiveCampaigns 返回所有进行中的活动，供调度任务遍历
func (c *CampaignLogic) ActiveCampaigns() ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := c.db.Where("is_active = ?", true).Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("查询进行中活动失败: %w", err)
	}
	return campaigns, nil
}

// RefreshVelocity 重算并落库单个活动的募集速度
func (c *CampaignLogic) RefreshVelocity(campaign *model.Campaign, now time.Time) error {
	velocity := Velocity(campaign.TotalRaisedNative, campaign.CreatedAt, now)
	if err := c.db.Model(&model.Campaign{}).Where("id = ?", campaign.Id).
		Update("contribution_velocity", velocity).Error; err != nil {
		return fmt.Errorf("更新活动速度失败: %w", err)
	}
	return nil
}
