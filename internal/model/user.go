package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// User 用户模型，以钱包地址唯一标识
// 四个累计字段只增不减，由贡献/创建流程维护
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	WalletAddress string `json:"wallet_address" gorm:"type:varchar(42);uniqueIndex;not null"`

	// 累计统计
	TotalContributed   decimal.Decimal `json:"total_contributed" gorm:"type:decimal(32,18);not null;default:0"`
	TotalBurned        decimal.Decimal `json:"total_burned" gorm:"type:decimal(32,18);not null;default:0"`
	CampaignsSupported int64           `json:"campaigns_supported" gorm:"not null;default:0"`
	CampaignsCreated   int64           `json:"campaigns_created" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "users"
}

// DisplayAddress 返回缩略地址: 0x742d...8B4e
func (u *User) DisplayAddress() string {
	if len(u.WalletAddress) >= 10 {
		return fmt.Sprintf("%s...%s", u.WalletAddress[:6], u.WalletAddress[len(u.WalletAddress)-4:])
	}
	return u.WalletAddress
}
