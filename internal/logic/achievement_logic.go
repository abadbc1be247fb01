package logic

import (
	"fmt"
	"time"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/model"
	"github.com/flamefund/ffs/internal/monitor"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// achievementRule 单条成就规则
type achievementRule struct {
	Type        model.AchievementType
	Name        string
	Description string
	Tier        model.BadgeTier
	// Due 判断用户当前累计值是否达标
	Due func(user *model.User, cfg config.LedgerConfig) bool
}

// achievementRules 固定有序规则表
// 规则彼此独立，一次评估可同时授予多条
var achievementRules = []achievementRule{
	{
		Type: model.AchievementFireStarter, Name: "Fire Starter",
		Description: "Burned 100 total", Tier: model.BadgeTierBronze,
		Due: burnedAtLeast("fire_starter"),
	},
	{
		Type: model.AchievementFlameFanatic, Name: "Flame Fanatic",
		Description: "Burned 1,000 total", Tier: model.BadgeTierSilver,
		Due: burnedAtLeast("flame_fanatic"),
	},
	{
		Type: model.AchievementInfernoKing, Name: "Inferno King",
		Description: "Burned 10,000 total", Tier: model.BadgeTierGold,
		Due: burnedAtLeast("inferno_king"),
	},
	{
		Type: model.AchievementFirstContribution, Name: "First Contribution",
		Description: "Made your first contribution", Tier: model.BadgeTierBronze,
		Due: contributedAtLeast("first_contribution"),
	},
	{
		Type: model.AchievementBigSpender, Name: "Big Spender",
		Description: "Contributed 10,000+ total", Tier: model.BadgeTierGold,
		Due: contributedAtLeast("big_spender"),
	},
	{
		Type: model.AchievementSupport10, Name: "Community Champion",
		Description: "Supported 10 campaigns", Tier: model.BadgeTierSilver,
		Due: func(user *model.User, cfg config.LedgerConfig) bool {
			return decimal.NewFromInt(user.CampaignsSupported).
				GreaterThanOrEqual(cfg.AchievementThreshold("support_10"))
		},
	},
}

func burnedAtLeast(threshold string) func(*model.User, config.LedgerConfig) bool {
	return func(user *model.User, cfg config.LedgerConfig) bool {
		return user.TotalBurned.GreaterThanOrEqual(cfg.AchievementThreshold(threshold))
	}
}

func contributedAtLeast(threshold string) func(*model.User, config.LedgerConfig) bool {
	return func(user *model.User, cfg config.LedgerConfig) bool {
		return user.TotalContributed.GreaterThanOrEqual(cfg.AchievementThreshold(threshold))
	}
}

// DueAchievements 返回达标且尚未持有的规则，纯函数
func DueAchievements(user *model.User, cfg config.LedgerConfig, held map[model.AchievementType]bool) []model.AchievementType {
	var due []model.AchievementType
	for _, rule := range achievementRules {
		if held[rule.Type] {
			continue
		}
		if rule.Due(user, cfg) {
			due = append(due, rule.Type)
		}
	}
	return due
}

// AchievementLogic 成就引擎
// (user_id, achievement_type) 唯一索引保证每种徽章最多授予一次
type AchievementLogic struct {
	db  *gorm.DB
	cfg config.LedgerConfig
}

// NewAchievementLogic 创建成就引擎
func NewAchievementLogic(db *gorm.DB, cfg config.LedgerConfig) *AchievementLogic {
	return &AchievementLogic{db: db, cfg: cfg}
}

// Evaluate 评估并授予成就，独立事务
func (a *AchievementLogic) Evaluate(user *model.User, now time.Time) ([]model.Achievement, error) {
	var awarded []model.Achievement
	err := a.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		awarded, txErr = a.EvaluateTx(tx, user, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	recordAwarded(awarded)
	return awarded, nil
}

// recordAwarded 成就计数在事务提交后累加，回滚不污染指标
func recordAwarded(awarded []model.Achievement) {
	if monitor.Business == nil {
		return
	}
	for _, ach := range awarded {
		monitor.Business.AchievementsAwarded.WithLabelValues(string(ach.AchievementType)).Inc()
	}
}

// EvaluateTx 在调用方事务内评估成就
// 插入用 ON CONFLICT DO NOTHING，并发评估同一用户不会产生重复徽章
func (a *AchievementLogic) EvaluateTx(tx *gorm.DB, user *model.User, now time.Time) ([]model.Achievement, error) {
	var existing []model.Achievement
	if err := tx.Where("user_id = ?", user.Id).Find(&existing).Error; err != nil {
		return nil, apperr.Dependency("query achievements failed", err)
	}
	held := make(map[model.AchievementType]bool, len(existing))
	for _, ach := range existing {
		held[ach.AchievementType] = true
	}

	var awarded []model.Achievement
	for _, rule := range achievementRules {
		if held[rule.Type] || !rule.Due(user, a.cfg) {
			continue
		}

		ach := model.Achievement{
			UserId:          user.Id,
			AchievementType: rule.Type,
			AchievementName: rule.Name,
			Description:     rule.Description,
			BadgeTier:       rule.Tier,
			EarnedAt:        now,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_type"}},
			DoNothing: true,
		}).Create(&ach)
		if result.Error != nil {
			return nil, apperr.Dependency("award achievement failed", result.Error)
		}
		if result.RowsAffected == 0 {
			// 并发评估已授予同款徽章
			continue
		}
		awarded = append(awarded, ach)
	}
	return awarded, nil
}

// ListByUser 返回用户全部成就
func (a *AchievementLogic) ListByUser(userId int64) ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := a.db.Where("user_id = ?", userId).
		Order("earned_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("查询成就列表失败: %w", err)
	}
	return achievements, nil
}
