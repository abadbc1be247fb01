package model

import (
	"time"
)

// AchievementType 成就类型
type AchievementType string

const (
	AchievementFireStarter       AchievementType = "fire_starter"       // 累计销毁达到一档
	AchievementFlameFanatic      AchievementType = "flame_fanatic"      // 累计销毁达到二档
	AchievementInfernoKing       AchievementType = "inferno_king"       // 累计销毁达到三档
	AchievementFirstContribution AchievementType = "first_contribution" // 累计贡献达到一档
	AchievementBigSpender        AchievementType = "big_spender"        // 累计贡献达到二档
	AchievementSupport10         AchievementType = "support_10"         // 支持活动数达标
)

// BadgeTier 徽章等级
type BadgeTier string

const (
	BadgeTierBronze BadgeTier = "bronze"
	BadgeTierSilver BadgeTier = "silver"
	BadgeTierGold   BadgeTier = "gold"
)

// Achievement 成就记录
// (user_id, achievement_type) 唯一索引保证每种成就最多授予一次
type Achievement struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserId int64 `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`

	AchievementType AchievementType `json:"achievement_type" gorm:"type:varchar(50);not null;uniqueIndex:idx_user_achievement"`
	AchievementName string          `json:"achievement_name" gorm:"type:varchar(100);not null"`
	Description     string          `json:"description" gorm:"type:varchar(200)"`
	BadgeTier       BadgeTier       `json:"badge_tier" gorm:"type:varchar(20)"`

	EarnedAt time.Time `json:"earned_at" gorm:"not null"`
}

// TableName 自定义表名
func (Achievement) TableName() string {
	return "achievements"
}
