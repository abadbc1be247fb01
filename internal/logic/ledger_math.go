package logic

import (
	"time"

	"github.com/shopspring/decimal"
)

// BurnSplit 按销毁比例切分贡献金额
// 先算销毁侧并舍入，入账侧用减法得出，保证 burned + toCampaign == amount 严格成立
func BurnSplit(amount, rate decimal.Decimal) (burned, toCampaign decimal.Decimal) {
	burned = amount.Mul(rate).Round(18)
	toCampaign = amount.Sub(burned)
	return burned, toCampaign
}

// Velocity 计算募集速度（原生单位/小时），不足1小时按1小时计
// 仅用于发现页排序，不参与任何资金决策
func Velocity(raised decimal.Decimal, createdAt, now time.Time) decimal.Decimal {
	if raised.IsZero() {
		return decimal.Zero
	}
	hours := now.Sub(createdAt).Hours()
	if hours < 1 {
		hours = 1
	}
	return raised.Div(decimal.NewFromFloat(hours))
}

// MilestoneSchedule 生成各阶段所需累计金额，阶段 i 需要 goal*i/n
// 中间阶段按列精度18位舍入，最后一档恒等于目标金额，募满即达成
func MilestoneSchedule(goalNative decimal.Decimal, numMilestones int) []decimal.Decimal {
	schedule := make([]decimal.Decimal, numMilestones)
	n := decimal.NewFromInt(int64(numMilestones))
	for i := 1; i < numMilestones; i++ {
		schedule[i-1] = goalNative.Mul(decimal.NewFromInt(int64(i))).DivRound(n, 18)
	}
	schedule[numMilestones-1] = goalNative
	return schedule
}

// ReleasePercent 返回进度阶段对应的可释放百分比，未达任何阶段为0
func ReleasePercent(stage int, releases map[int]int) int {
	return releases[stage]
}
