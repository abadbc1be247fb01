package logic

import (
	"context"
	"errors"
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

// ContributeLogic 贡献处理器：贡献记录的唯一写入方，
// 也是活动/用户累计字段的唯一修改方
type ContributeLogic struct {
	db           *gorm.DB
	cfg          config.LedgerConfig
	oracle       pricing.Oracle
	idgen        identity.Generator
	burnStats    *BurnStatsLogic
	achievements *AchievementLogic
	timeout      time.Duration
}

// NewContributeLogic 创建贡献处理器
func NewContributeLogic(db *gorm.DB, cfg config.LedgerConfig, oracle pricing.Oracle, idgen identity.Generator, burnStats *BurnStatsLogic, achievements *AchievementLogic, oracleTimeout time.Duration) *ContributeLogic {
	return &ContributeLogic{
		db:           db,
		cfg:          cfg,
		oracle:       oracle,
		idgen:        idgen,
		burnStats:    burnStats,
		achievements: achievements,
		timeout:      oracleTimeout,
	}
}

// ContributeInput 贡献请求
type ContributeInput struct {
	CampaignId        string
	ContributorWallet string
	AmountNative      decimal.Decimal
	Comment           string
}

// ContributionResult 贡献结果
type ContributionResult struct {
	TransactionRef   string              `json:"transaction_ref"`
	BurnedNative     decimal.Decimal     `json:"burned_native"`
	ToCampaignNative decimal.Decimal     `json:"to_campaign_native"`
	NewAchievements  []model.Achievement `json:"new_achievements"`
}

// Contribute 处理单笔贡献，对活动/用户/销毁统计的更新要么全部生效要么全部回滚
func (c *ContributeLogic) Contribute(ctx context.Context, input ContributeInput) (*ContributionResult, error) {
	if !input.AmountNative.IsPositive() {
		c.rejected("invalid_amount")
		return nil, apperr.Validation("贡献金额必须大于0")
	}
	if !identity.ValidAddress(input.ContributorWallet) {
		c.rejected("invalid_wallet")
		return nil, apperr.Validation("贡献者钱包地址不合法")
	}

	// 销毁侧先算并舍入，入账侧用减法，两者之和恒等于原始金额
	burned, toCampaign := BurnSplit(input.AmountNative, c.cfg.BurnRateDecimal())

	// 价格查询是唯一的外部阻塞点，放在事务外
	price, err := pricing.WithTimeout(ctx, c.oracle, c.timeout)
	if err != nil {
		return nil, err
	}
	amountFiat := input.AmountNative.Mul(price)

	now := time.Now()
	result := &ContributionResult{
		TransactionRef:   c.idgen.NewTransactionRef(),
		BurnedNative:     burned,
		ToCampaignNative: toCampaign,
	}

	err = c.db.Transaction(func(tx *gorm.DB) error {
		// 活动行加锁，后续累计更新与支持者判定在锁内完成
		var campaign model.Campaign
		if txErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ? AND is_active = ?", input.CampaignId, true).
			First(&campaign).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				c.rejected("campaign_not_found")
				return apperr.NotFound("campaign %s not found or inactive", input.CampaignId)
			}
			return apperr.Dependency("lock campaign failed", txErr)
		}

		// 用户行加锁，成就评估读到的累计值不会被并发贡献跳过阈值
		user, txErr := lockUserTx(tx, input.ContributorWallet)
		if txErr != nil {
			return txErr
		}

		contribution := model.Contribution{
			CampaignId:       campaign.Id,
			ContributorId:    user.Id,
			AmountNative:     input.AmountNative,
			AmountFiat:       amountFiat,
			BurnedNative:     burned,
			ToCampaignNative: toCampaign,
			TransactionRef:   result.TransactionRef,
			Comment:          input.Comment,
		}
		if txErr := tx.Create(&contribution).Error; txErr != nil {
			if strings.Contains(txErr.Error(), "duplicate") || strings.Contains(txErr.Error(), "unique") {
				return apperr.Conflict("transaction ref collision", txErr)
			}
			return apperr.Dependency("create contribution failed", txErr)
		}

		firstSupport, txErr := recordSupporter(tx, campaign.Id, user.Id)
		if txErr != nil {
			return txErr
		}

		campaignUpdates := map[string]interface{}{
			"total_raised_native": gorm.Expr("total_raised_native + ?", toCampaign),
			"total_raised_fiat":   gorm.Expr("total_raised_fiat + ?", amountFiat),
			"total_burned_native": gorm.Expr("total_burned_native + ?", burned),
		}
		if firstSupport {
			campaignUpdates["supporter_count"] = gorm.Expr("supporter_count + 1")
		}
		if txErr := tx.Model(&model.Campaign{}).Where("id = ?", campaign.Id).
			Updates(campaignUpdates).Error; txErr != nil {
			return apperr.Dependency("update campaign totals failed", txErr)
		}

		userUpdates := map[string]interface{}{
			"total_contributed": gorm.Expr("total_contributed + ?", input.AmountNative),
			"total_burned":      gorm.Expr("total_burned + ?", burned),
		}
		if firstSupport {
			userUpdates["campaigns_supported"] = gorm.Expr("campaigns_supported + 1")
		}
		if txErr := tx.Model(&model.User{}).Where("id = ?", user.Id).
			Updates(userUpdates).Error; txErr != nil {
			return apperr.Dependency("update user totals failed", txErr)
		}

		if txErr := c.burnStats.RecordTx(tx, burned, decimal.Zero, now); txErr != nil {
			return txErr
		}

		// 成就按更新后的累计值评估
		user.TotalContributed = user.TotalContributed.Add(input.AmountNative)
		user.TotalBurned = user.TotalBurned.Add(burned)
		if firstSupport {
			user.CampaignsSupported++
		}
		awarded, txErr := c.achievements.EvaluateTx(tx, user, now)
		if txErr != nil {
			return txErr
		}
		result.NewAchievements = awarded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.ContributionsTotal.Inc()
		monitor.Business.BurnedNativeTotal.Add(burned.InexactFloat64())
		monitor.Business.RaisedNativeTotal.Add(toCampaign.InexactFloat64())
	}
	recordAwarded(result.NewAchievements)
	logger.Info("Contribution to %s: amount %s, burned %s, credited %s",
		input.CampaignId, input.AmountNative.String(), burned.String(), toCampaign.String())

	return result, nil
}

// recordSupporter 登记活动支持者，返回是否首次支持
// 唯一索引插入是否生效决定计数，并发下不会重复累加
func recordSupporter(tx *gorm.DB, campaignId, userId int64) (bool, error) {
	supporter := model.CampaignSupporter{CampaignId: campaignId, UserId: userId}
	insert := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&supporter)
	if insert.Error != nil {
		return false, apperr.Dependency("record supporter failed", insert.Error)
	}
	return insert.RowsAffected > 0, nil
}

// ContributionsByCampaign 返回活动的贡献记录，分页倒序
func (c *ContributeLogic) ContributionsByCampaign(campaignId string, page, pageSize int) ([]model.Contribution, int64, error) {
	var campaign model.Campaign
	if err := c.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperr.NotFound("campaign %s not found", campaignId)
		}
		return nil, 0, apperr.Dependency("query campaign failed", err)
	}

	var total int64
	if err := c.db.Model(&model.Contribution{}).
		Where("campaign_id = ?", campaign.Id).
		Count(&total).Error; err != nil {
		return nil, 0, apperr.Dependency("count contributions failed", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var contributions []model.Contribution
	if err := c.db.Where("campaign_id = ?", campaign.Id).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contributions).Error; err != nil {
		return nil, 0, apperr.Dependency("query contributions failed", err)
	}
	return contributions, total, nil
}

func (c *ContributeLogic) rejected(reason string) {
	if monitor.Business != nil {
		monitor.Business.ContributionRejected.WithLabelValues(reason).Inc()
	}
}
