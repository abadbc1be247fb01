package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BurnStatsDay 按自然日累计的销毁统计，每天一行
// TotalBurnToDate 等于前一天的 TotalBurnToDate 加上当天总销毁量
type BurnStatsDay struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 日期，格式 YYYY-MM-DD，每个日期仅一行
	Date string `json:"date" gorm:"type:varchar(10);uniqueIndex;not null"`

	DailyContributionBurn decimal.Decimal `json:"daily_contribution_burn" gorm:"type:decimal(32,18);not null;default:0"`
	DailyCreationBurn     decimal.Decimal `json:"daily_creation_burn" gorm:"type:decimal(32,18);not null;default:0"`
	DailyTotalBurn        decimal.Decimal `json:"daily_total_burn" gorm:"type:decimal(32,18);not null;default:0"`

	CampaignsCreated  int64 `json:"campaigns_created" gorm:"not null;default:0"`
	ContributionsMade int64 `json:"contributions_made" gorm:"not null;default:0"`

	TotalBurnToDate decimal.Decimal `json:"total_burn_to_date" gorm:"type:decimal(32,18);not null;default:0"`
}

// TableName 自定义表名
func (BurnStatsDay) TableName() string {
	return "burn_stats"
}

// BurnDateFormat 日期列的格式
const BurnDateFormat = "2006-01-02"
