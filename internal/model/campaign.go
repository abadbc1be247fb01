package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign 众筹活动模型
// 目标金额在创建时按当时价格换算并冻结，此后不再变化
type Campaign struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 对外短ID，随机生成
	CampaignId string `json:"campaign_id" gorm:"type:varchar(12);uniqueIndex;not null"`
	CreatorId  int64  `json:"creator_id" gorm:"not null;index"`

	// 基本信息
	Title              string `json:"title" gorm:"type:varchar(200);not null"`
	Category           string `json:"category" gorm:"type:varchar(50);not null"`
	Description        string `json:"description" gorm:"type:text"`
	BeneficiaryAddress string `json:"beneficiary_address" gorm:"type:varchar(42);not null"`

	// 目标与里程碑
	GoalFiat               decimal.Decimal `json:"goal_fiat" gorm:"type:decimal(32,18);not null"`
	GoalNative             decimal.Decimal `json:"goal_native" gorm:"type:decimal(32,18);not null"`
	DurationDays           int             `json:"duration_days" gorm:"not null"`
	NumMilestones          int             `json:"num_milestones" gorm:"not null;default:1"`
	CreatorDepositPerStage decimal.Decimal `json:"creator_deposit_per_stage" gorm:"type:decimal(32,18);not null;default:0"`
	TotalCreatorDeposit    decimal.Decimal `json:"total_creator_deposit" gorm:"type:decimal(32,18);not null;default:0"`

	// 状态
	EndsAt     time.Time `json:"ends_at" gorm:"not null"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	IsVerified bool      `json:"is_verified" gorm:"not null;default:false"`

	// 资金统计
	TotalRaisedNative    decimal.Decimal `json:"total_raised_native" gorm:"type:decimal(32,18);not null;default:0"`
	TotalRaisedFiat      decimal.Decimal `json:"total_raised_fiat" gorm:"type:decimal(32,18);not null;default:0"`
	TotalBurnedNative    decimal.Decimal `json:"total_burned_native" gorm:"type:decimal(32,18);not null;default:0"`
	CreationFeeBurned    decimal.Decimal `json:"creation_fee_burned" gorm:"type:decimal(32,18);not null;default:0"`
	SupporterCount       int64           `json:"supporter_count" gorm:"not null;default:0"`
	ContributionVelocity decimal.Decimal `json:"contribution_velocity" gorm:"type:decimal(32,18);not null;default:0"` // 每小时募集量

	// 媒体
	ImageURL string `json:"image_url" gorm:"type:varchar(500)"`
	VideoURL string `json:"video_url" gorm:"type:varchar(500)"`
}

// TableName 自定义表名
func (Campaign) TableName() string {
	return "campaigns"
}

// ProgressPercent 募集进度百分比，封顶100
func (c *Campaign) ProgressPercent() decimal.Decimal {
	if c.GoalNative.IsPositive() {
		pct := c.TotalRaisedNative.Div(c.GoalNative).Mul(decimal.NewFromInt(100))
		if pct.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.NewFromInt(100)
		}
		return pct
	}
	return decimal.Zero
}

// IsSuccessful 是否已达到目标金额
func (c *Campaign) IsSuccessful() bool {
	return c.TotalRaisedNative.GreaterThanOrEqual(c.GoalNative)
}

// IsEnded 是否已结束（计算值，不落库）
func (c *Campaign) IsEnded(now time.Time) bool {
	return !now.Before(c.EndsAt)
}

// DaysRemaining 剩余天数
func (c *Campaign) DaysRemaining(now time.Time) int {
	if c.EndsAt.After(now) {
		return int(c.EndsAt.Sub(now).Hours() / 24)
	}
	return 0
}

// CurrentStage 根据进度返回当前里程碑阶段
// 阈值从高到低判断，边界值(恰好25/50/75/100)归入该档
func (c *Campaign) CurrentStage() int {
	progress := c.ProgressPercent()
	for _, stage := range []int64{100, 75, 50, 25} {
		if progress.GreaterThanOrEqual(decimal.NewFromInt(stage)) {
			return int(stage)
		}
	}
	return 0
}
