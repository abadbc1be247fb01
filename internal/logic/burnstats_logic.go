package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BurnStatsLogic 每日销毁统计
// burn_stats 表每个日期一行，TotalBurnToDate 跨日单调不减
type BurnStatsLogic struct {
	db *gorm.DB
}

// NewBurnStatsLogic 创建销毁统计逻辑
func NewBurnStatsLogic(db *gorm.DB) *BurnStatsLogic {
	return &BurnStatsLogic{db: db}
}

// Record 记录一次销毁事件，独立事务
func (b *BurnStatsLogic) Record(contributionBurn, creationBurn decimal.Decimal, now time.Time) error {
	return b.db.Transaction(func(tx *gorm.DB) error {
		return b.RecordTx(tx, contributionBurn, creationBurn, now)
	})
}

// RecordTx 在调用方事务内记录销毁事件
// 当日行加 FOR UPDATE 锁，保证同日并发调用不丢增量
func (b *BurnStatsLogic) RecordTx(tx *gorm.DB, contributionBurn, creationBurn decimal.Decimal, now time.Time) error {
	today := now.UTC().Format(model.BurnDateFormat)

	day, err := b.lockDay(tx, today)
	if err != nil {
		return err
	}

	applyBurn(day, contributionBurn, creationBurn)

	if err := tx.Model(&model.BurnStatsDay{}).Where("id = ?", day.Id).Updates(map[string]interface{}{
		"daily_contribution_burn": day.DailyContributionBurn,
		"daily_creation_burn":     day.DailyCreationBurn,
		"daily_total_burn":        day.DailyTotalBurn,
		"total_burn_to_date":      day.TotalBurnToDate,
		"contributions_made":      day.ContributionsMade,
		"campaigns_created":       day.CampaignsCreated,
	}).Error; err != nil {
		return apperr.Dependency("update burn stats failed", err)
	}
	return nil
}

// applyBurn 把一次销毁事件累加到当日统计行
// DailyTotalBurn 恒等于两个分项之和，TotalBurnToDate 单调不减
func applyBurn(day *model.BurnStatsDay, contributionBurn, creationBurn decimal.Decimal) {
	day.DailyContributionBurn = day.DailyContributionBurn.Add(contributionBurn)
	day.DailyCreationBurn = day.DailyCreationBurn.Add(creationBurn)
	day.DailyTotalBurn = day.DailyContributionBurn.Add(day.DailyCreationBurn)
	day.TotalBurnToDate = day.TotalBurnToDate.Add(contributionBurn.Add(creationBurn))
	if contributionBurn.IsPositive() {
		day.ContributionsMade++
	}
	if creationBurn.IsPositive() {
		day.CampaignsCreated++
	}
}

// lockDay 锁定当日统计行，首次使用时创建并结转累计值
func (b *BurnStatsLogic) lockDay(tx *gorm.DB, today string) (*model.BurnStatsDay, error) {
	var day model.BurnStatsDay
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ?", today).
		First(&day).Error
	if err == nil {
		return &day, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Dependency("lock burn stats failed", err)
	}

	// 新的一天：从最近一行结转 total_burn_to_date，没有历史则从0开始
	carried := decimal.Zero
	var prev model.BurnStatsDay
	if err := tx.Order("date DESC").First(&prev).Error; err == nil {
		carried = prev.TotalBurnToDate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Dependency("query previous burn stats failed", err)
	}

	day = model.BurnStatsDay{
		Date:            today,
		TotalBurnToDate: carried,
	}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&day)
	if result.Error != nil {
		return nil, apperr.Dependency("create burn stats day failed", result.Error)
	}

	// 无论是否本事务创建成功，重新加锁读回，避免并发建行丢增量
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ?", today).
		First(&day).Error; err != nil {
		return nil, apperr.Dependency("reload burn stats day failed", err)
	}
	return &day, nil
}

// History 返回最近 days 天的统计，按日期从旧到新
func (b *BurnStatsLogic) History(days int) ([]model.BurnStatsDay, error) {
	var stats []model.BurnStatsDay
	if err := b.db.Order("date DESC").Limit(days).Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("查询销毁统计失败: %w", err)
	}
	// 反转为从旧到新，便于画图
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return stats, nil
}

// TotalBurned 返回截至目前的累计销毁量
func (b *BurnStatsLogic) TotalBurned() (decimal.Decimal, error) {
	var latest model.BurnStatsDay
	err := b.db.Order("date DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("查询累计销毁量失败: %w", err)
	}
	return latest.TotalBurnToDate, nil
}

// BurnProjection 销毁量预测结果
type BurnProjection struct {
	DailyContributionBurn decimal.Decimal            `json:"daily_contribution_burn"`
	DailyCreationBurn     decimal.Decimal            `json:"daily_creation_burn"`
	DailyTotalBurn        decimal.Decimal            `json:"daily_total_burn"`
	ProjectionsNative     map[string]decimal.Decimal `json:"projections_native"`
	ProjectionsFiat       map[string]decimal.Decimal `json:"projections_fiat"`
}

// Project 按给定日交易量与建活动频率推算销毁量，纯计算
func Project(dailyVolume decimal.Decimal, campaignsPerDay int, avgCreationFee, burnRate, price decimal.Decimal, customDays int) BurnProjection {
	dailyContribution := dailyVolume.Mul(burnRate)
	dailyCreation := avgCreationFee.Mul(decimal.NewFromInt(int64(campaignsPerDay)))
	dailyTotal := dailyContribution.Add(dailyCreation)

	horizons := map[string]int64{
		"daily":   1,
		"weekly":  7,
		"monthly": 30,
		"yearly":  365,
		"custom":  int64(customDays),
	}

	native := make(map[string]decimal.Decimal, len(horizons))
	fiat := make(map[string]decimal.Decimal, len(horizons))
	for name, days := range horizons {
		total := dailyTotal.Mul(decimal.NewFromInt(days))
		native[name] = total
		fiat[name] = total.Mul(price)
	}

	return BurnProjection{
		DailyContributionBurn: dailyContribution,
		DailyCreationBurn:     dailyCreation,
		DailyTotalBurn:        dailyTotal,
		ProjectionsNative:     native,
		ProjectionsFiat:       fiat,
	}
}
