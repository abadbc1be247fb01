// Package pricing 提供原生代币与法币之间的换算价格
// 账本只消费价格，不拥有价格来源；生产环境应接入 DEX 行情
package pricing

import (
	"context"
	"time"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/shopspring/decimal"
)

// Oracle 价格预言机接口
type Oracle interface {
	// CurrentPrice 返回当前每原生单位的法币价格
	CurrentPrice(ctx context.Context) (decimal.Decimal, error)
}

// Fixed 固定价格实现，价格来自配置
type Fixed struct {
	price decimal.Decimal
}

// NewFixed 创建固定价格预言机
func NewFixed(price float64) *Fixed {
	return &Fixed{price: decimal.NewFromFloat(price)}
}

// CurrentPrice 返回配置的固定价格
func (f *Fixed) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, apperr.Dependency("price oracle unavailable", err)
	}
	if !f.price.IsPositive() {
		return decimal.Zero, apperr.Dependency("price oracle returned non-positive price", nil)
	}
	return f.price, nil
}

// WithTimeout 包装预言机调用，查询是账本流程里唯一可能阻塞的外部点
func WithTimeout(ctx context.Context, oracle Oracle, timeout time.Duration) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	price, err := oracle.CurrentPrice(ctx)
	if err != nil {
		if apperr.IsKind(err, apperr.KindDependency) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperr.Dependency("price oracle query failed", err)
	}
	return price, nil
}
