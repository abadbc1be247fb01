package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution 贡献记录，只追加不修改
// 不变式: BurnedNative + ToCampaignNative == AmountNative
type Contribution struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId    int64 `json:"campaign_id" gorm:"not null;index"`
	ContributorId int64 `json:"contributor_id" gorm:"not null;index"`

	AmountNative     decimal.Decimal `json:"amount_native" gorm:"type:decimal(32,18);not null"`
	AmountFiat       decimal.Decimal `json:"amount_fiat" gorm:"type:decimal(32,18);not null"`
	BurnedNative     decimal.Decimal `json:"burned_native" gorm:"type:decimal(32,18);not null"`
	ToCampaignNative decimal.Decimal `json:"to_campaign_native" gorm:"type:decimal(32,18);not null"`

	TransactionRef string `json:"transaction_ref" gorm:"type:varchar(66);uniqueIndex"`
	Comment        string `json:"comment" gorm:"type:text"`
}

// TableName 自定义表名
func (Contribution) TableName() string {
	return "contributions"
}

// CampaignSupporter 活动支持者去重表
// (campaign_id, user_id) 唯一索引保证同一钱包对同一活动只记一次支持
type CampaignSupporter struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_campaign_supporter"`
	UserId     int64 `json:"user_id" gorm:"not null;uniqueIndex:idx_campaign_supporter"`
}

// TableName 自定义表名
func (CampaignSupporter) TableName() string {
	return "campaign_supporters"
}
