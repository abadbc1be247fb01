package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func campaignWithProgress(goal, raised string) *Campaign {
	return &Campaign{
		GoalNative:        decimal.RequireFromString(goal),
		TotalRaisedNative: decimal.RequireFromString(raised),
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		raised string
		want   string
	}{
		{"零进度", "1000", "0", "0"},
		{"半程", "1000", "500", "50"},
		{"达标", "1000", "1000", "100"},
		{"超募封顶100", "1000", "2500", "100"},
		{"目标为零视为无进度", "0", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := campaignWithProgress(tt.goal, tt.raised).ProgressPercent()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"ProgressPercent = %s, want %s", got, tt.want)
		})
	}
}

// TestCurrentStage 边界值恰好落档，阈值之下归入下一档
func TestCurrentStage(t *testing.T) {
	tests := []struct {
		raised string
		want   int
	}{
		{"0", 0},
		{"249.99", 0},
		{"250", 25},
		{"499.99", 25},
		{"500", 50},
		{"750", 75},
		{"999.99", 75},
		{"1000", 100},
		{"5000", 100}, // 超募仍是100档
	}

	for _, tt := range tests {
		c := campaignWithProgress("1000", tt.raised)
		assert.Equal(t, tt.want, c.CurrentStage(), "raised=%s", tt.raised)
	}
}

func TestIsSuccessful(t *testing.T) {
	assert.False(t, campaignWithProgress("1000", "999.999999999999999999").IsSuccessful())
	assert.True(t, campaignWithProgress("1000", "1000").IsSuccessful())
	assert.True(t, campaignWithProgress("1000", "1001").IsSuccessful())
}

func TestIsEndedAndDaysRemaining(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	c := &Campaign{EndsAt: now.Add(49 * time.Hour)}

	assert.False(t, c.IsEnded(now))
	assert.Equal(t, 2, c.DaysRemaining(now))

	// 截止时刻即视为结束
	assert.True(t, c.IsEnded(c.EndsAt))
	assert.True(t, c.IsEnded(c.EndsAt.Add(time.Minute)))
	assert.Equal(t, 0, c.DaysRemaining(c.EndsAt))
}

func TestDisplayAddress(t *testing.T) {
	u := &User{WalletAddress: "0x742d35Cc6634C0532925a3b844Bc9e7595f08B4e"}
	assert.Equal(t, "0x742d...8B4e", u.DisplayAddress())

	short := &User{WalletAddress: "0x1234"}
	assert.Equal(t, "0x1234", short.DisplayAddress())
}
