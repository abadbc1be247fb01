package logic

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ActivityEntry 活动流条目
type ActivityEntry struct {
	Type               string    `json:"type"`
	ContributorAddress string    `json:"contributor_address"`
	AmountNative       string    `json:"amount_native"`
	BurnedNative       string    `json:"burned_native"`
	CampaignTitle      string    `json:"campaign_title"`
	CampaignId         string    `json:"campaign_id"`
	Timestamp          time.Time `json:"timestamp"`
}

// ActivityLogic 最近贡献的只读活动流
type ActivityLogic struct {
	db *gorm.DB
}

// NewActivityLogic 创建活动流逻辑
func NewActivityLogic(db *gorm.DB) *ActivityLogic {
	return &ActivityLogic{db: db}
}

// activityFeedSQL 一次联查取回贡献、活动与贡献者
const activityFeedSQL = `SELECT c.amount_native, c.burned_native, c.created_at, p.title AS campaign_title, p.campaign_id, u.wallet_address FROM contributions c JOIN campaigns p ON p.id = c.campaign_id JOIN users u ON u.id = c.contributor_id ORDER BY c.created_at DESC LIMIT ?`

// Recent 返回最近的贡献活动
func (a *ActivityLogic) Recent(limit int) ([]ActivityEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []struct {
		AmountNative  string
		BurnedNative  string
		CreatedAt     time.Time
		CampaignTitle string
		CampaignId    string
		WalletAddress string
	}
	if err := a.db.Raw(activityFeedSQL, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询活动流失败: %w", err)
	}

	entries := make([]ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ActivityEntry{
			Type:               "contribution",
			ContributorAddress: shortAddress(row.WalletAddress),
			AmountNative:       row.AmountNative,
			BurnedNative:       row.BurnedNative,
			CampaignTitle:      row.CampaignTitle,
			CampaignId:         row.CampaignId,
			Timestamp:          row.CreatedAt,
		})
	}
	return entries, nil
}

func shortAddress(addr string) string {
	if len(addr) >= 10 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}
