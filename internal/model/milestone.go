package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Milestone 活动里程碑，每个资助阶段一行，阶段号从1开始
// 各阶段所需累计金额随阶段号单调不减
type Milestone struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId  int64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_campaign_stage"`
	StageNumber int   `json:"stage_number" gorm:"not null;uniqueIndex:idx_campaign_stage"`

	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Description string `json:"description" gorm:"type:text"`

	RequiredAmountNative decimal.Decimal `json:"required_amount_native" gorm:"type:decimal(32,18);not null"`
	CreatorDepositNative decimal.Decimal `json:"creator_deposit_native" gorm:"type:decimal(32,18);not null"`

	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	IsVerified  bool       `json:"is_verified" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	VerifiedAt  *time.Time `json:"verified_at"`

	ProofSubmitted string `json:"proof_submitted" gorm:"type:text"`
	ProofURL       string `json:"proof_url" gorm:"type:varchar(500)"`

	// 资金释放记录，由里程碑释放任务写入
	FundsReleased   bool       `json:"funds_released" gorm:"not null;default:false"`
	ReleasedPercent int        `json:"released_percent" gorm:"not null;default:0"`
	FundsReleasedAt *time.Time `json:"funds_released_at"`
}

// TableName 自定义表名
func (Milestone) TableName() string {
	return "milestones"
}
