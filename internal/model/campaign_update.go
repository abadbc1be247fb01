package model

import (
	"time"
)

// CampaignUpdate 活动进展更新，仅创建者可发布
type CampaignUpdate struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Title      string `json:"title" gorm:"type:varchar(200);not null"`
	Content    string `json:"content" gorm:"type:text;not null"`
	ImageURL   string `json:"image_url" gorm:"type:varchar(500)"`
}

// TableName 自定义表名
func (CampaignUpdate) TableName() string {
	return "campaign_updates"
}

// Comment 活动留言
type Comment struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	UserId     int64  `json:"user_id" gorm:"not null;index"`
	Content    string `json:"content" gorm:"type:text;not null"`
}

// TableName 自定义表名
func (Comment) TableName() string {
	return "comments"
}
