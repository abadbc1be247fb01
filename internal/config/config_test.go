package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreationFee(t *testing.T) {
	cfg := LedgerConfig{
		DefaultCreationFee: 25,
		CreationFees: map[string]float64{
			"business":  50,
			"charity":   15,
			"emergency": 10,
		},
	}

	assert.True(t, decimal.NewFromInt(50).Equal(cfg.CreationFee("business")))
	assert.True(t, decimal.NewFromInt(15).Equal(cfg.CreationFee("charity")))
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.CreationFee("emergency")))
	// 未配置的类别回落到默认费
	assert.True(t, decimal.NewFromInt(25).Equal(cfg.CreationFee("gaming")))
}

func TestBurnRateDecimal(t *testing.T) {
	cfg := LedgerConfig{BurnRate: 0.01}
	assert.True(t, decimal.RequireFromString("0.01").Equal(cfg.BurnRateDecimal()))
}

func TestAchievementThreshold(t *testing.T) {
	cfg := LedgerConfig{AchievementThresholds: map[string]float64{"fire_starter": 100}}

	assert.True(t, decimal.NewFromInt(100).Equal(cfg.AchievementThreshold("fire_starter")))
	// 未配置的成就阈值为0，规则会立即满足，属配置错误而非运行时错误
	assert.True(t, decimal.Zero.Equal(cfg.AchievementThreshold("unknown")))
}
