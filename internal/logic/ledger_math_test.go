package logic

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBurnSplit 验证切分守恒：burned + toCampaign == amount 严格成立
func TestBurnSplit(t *testing.T) {
	rate := decimal.NewFromFloat(0.01)

	tests := []struct {
		name       string
		amount     string
		burned     string
		toCampaign string
	}{
		{"整数金额", "1000", "10", "990"},
		{"小额", "1", "0.01", "0.99"},
		{"带小数", "123.45", "1.2345", "122.2155"},
		{"零金额", "0", "0", "0"},
		{"18位精度", "0.000000000000000001", "0", "0.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			burned, toCampaign := BurnSplit(amount, rate)

			assert.True(t, decimal.RequireFromString(tt.burned).Equal(burned),
				"burned = %s, want %s", burned, tt.burned)
			assert.True(t, decimal.RequireFromString(tt.toCampaign).Equal(toCampaign),
				"toCampaign = %s, want %s", toCampaign, tt.toCampaign)
			// 守恒不变量
			assert.True(t, amount.Equal(burned.Add(toCampaign)))
		})
	}
}

// TestBurnSplitConservation 任意比例下守恒都不能破
func TestBurnSplitConservation(t *testing.T) {
	amounts := []string{"999.999999999999999999", "0.123456789012345678", "10000000"}
	rates := []string{"0.01", "0.025", "0.5", "0"}

	for _, a := range amounts {
		for _, r := range rates {
			amount := decimal.RequireFromString(a)
			burned, toCampaign := BurnSplit(amount, decimal.RequireFromString(r))
			assert.True(t, amount.Equal(burned.Add(toCampaign)),
				"amount=%s rate=%s: %s + %s != %s", a, r, burned, toCampaign, a)
			assert.False(t, burned.IsNegative())
			assert.False(t, toCampaign.IsNegative())
		}
	}
}

func TestVelocity(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		raised    string
		createdAt time.Time
		want      string
	}{
		{"正常跨度", "100", now.Add(-10 * time.Hour), "10"},
		{"不足1小时按1小时", "50", now.Add(-30 * time.Minute), "50"},
		{"刚创建", "42", now, "42"},
		{"零募集直接为零", "0", now.Add(-100 * time.Hour), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity(decimal.RequireFromString(tt.raised), tt.createdAt, now)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"Velocity = %s, want %s", got, tt.want)
		})
	}
}

// TestMilestoneSchedule 验证阶段金额 goal*i/n 且单调不减
func TestMilestoneSchedule(t *testing.T) {
	// 目标1万法币，价格0.00015换算约6666万原生，这里直接用整数便于核对
	goal := decimal.NewFromInt(100000000)
	schedule := MilestoneSchedule(goal, 4)

	require.Len(t, schedule, 4)
	assert.True(t, decimal.NewFromInt(25000000).Equal(schedule[0]))
	assert.True(t, decimal.NewFromInt(50000000).Equal(schedule[1]))
	assert.True(t, decimal.NewFromInt(75000000).Equal(schedule[2]))
	assert.True(t, goal.Equal(schedule[3]))

	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].GreaterThanOrEqual(schedule[i-1]))
	}
}

func TestMilestoneScheduleSingle(t *testing.T) {
	goal := decimal.RequireFromString("333.333333333333333333")
	schedule := MilestoneSchedule(goal, 1)

	require.Len(t, schedule, 1)
	// 单阶段时最后一档就是全额目标
	assert.True(t, goal.Equal(schedule[0]))
}

// TestMilestoneScheduleHighPrecisionGoal 18位小数的目标金额下，
// 最后一档仍必须恰好等于目标，否则募满也无法达成末段
func TestMilestoneScheduleHighPrecisionGoal(t *testing.T) {
	goal := decimal.RequireFromString("1000.000000000000000001")
	schedule := MilestoneSchedule(goal, 3)

	require.Len(t, schedule, 3)
	assert.True(t, goal.Equal(schedule[2]), "last stage = %s, want %s", schedule[2], goal)

	// 中间阶段不超过目标且单调不减，募集额等于目标时全部阶段可达
	for i, required := range schedule {
		assert.True(t, required.LessThanOrEqual(goal), "stage %d requires %s above goal", i+1, required)
		if i > 0 {
			assert.True(t, required.GreaterThanOrEqual(schedule[i-1]))
		}
	}
}

func TestReleasePercent(t *testing.T) {
	releases := map[int]int{25: 20, 50: 40, 75: 60, 100: 100}

	assert.Equal(t, 20, ReleasePercent(25, releases))
	assert.Equal(t, 40, ReleasePercent(50, releases))
	assert.Equal(t, 60, ReleasePercent(75, releases))
	assert.Equal(t, 100, ReleasePercent(100, releases))
	// 未达任何阶段
	assert.Equal(t, 0, ReleasePercent(0, releases))
}

// TestProject 验证预测的日销毁构成与各时间跨度倍数
func TestProject(t *testing.T) {
	dailyVolume := decimal.NewFromInt(10000)
	burnRate := decimal.NewFromFloat(0.01)
	avgFee := decimal.NewFromInt(25)
	price := decimal.NewFromFloat(0.00015)

	p := Project(dailyVolume, 4, avgFee, burnRate, price, 90)

	// 100贡献销毁 + 4*25创建销毁 = 200/日
	assert.True(t, decimal.NewFromInt(100).Equal(p.DailyContributionBurn))
	assert.True(t, decimal.NewFromInt(100).Equal(p.DailyCreationBurn))
	assert.True(t, decimal.NewFromInt(200).Equal(p.DailyTotalBurn))

	assert.True(t, decimal.NewFromInt(200).Equal(p.ProjectionsNative["daily"]))
	assert.True(t, decimal.NewFromInt(1400).Equal(p.ProjectionsNative["weekly"]))
	assert.True(t, decimal.NewFromInt(6000).Equal(p.ProjectionsNative["monthly"]))
	assert.True(t, decimal.NewFromInt(73000).Equal(p.ProjectionsNative["yearly"]))
	assert.True(t, decimal.NewFromInt(18000).Equal(p.ProjectionsNative["custom"]))

	// 法币侧 = 原生侧 * 价格
	assert.True(t, p.ProjectionsNative["daily"].Mul(price).Equal(p.ProjectionsFiat["daily"]))
	assert.True(t, p.ProjectionsNative["yearly"].Mul(price).Equal(p.ProjectionsFiat["yearly"]))
}
