// Package identity 生成活动ID、交易引用与演示钱包地址
// 隔离随机性来源，测试可注入确定性实现；唯一性靠键空间保证，插入冲突按竞争处理
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Generator 标识生成器接口
type Generator interface {
	// NewCampaignID 生成12位字母数字活动短ID
	NewCampaignID() string
	// NewTransactionRef 生成 0x 前缀的64位十六进制交易引用
	NewTransactionRef() string
	// NewWalletAddress 生成演示用钱包地址
	NewWalletAddress() string
}

// Random 基于 crypto/rand 的默认实现
type Random struct{}

// NewRandom 创建随机标识生成器
func NewRandom() *Random {
	return &Random{}
}

const campaignIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCampaignID 生成12位字母数字活动短ID
func (r *Random) NewCampaignID() string {
	buf := make([]byte, 12)
	max := big.NewInt(int64(len(campaignIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand 失败说明系统熵源不可用
		}
		buf[i] = campaignIDAlphabet[n.Int64()]
	}
	return string(buf)
}

// NewTransactionRef 生成 0x 前缀的64位十六进制交易引用
func (r *Random) NewTransactionRef() string {
	return "0x" + randomHex(32)
}

// NewWalletAddress 生成演示用钱包地址
func (r *Random) NewWalletAddress() string {
	return "0x" + randomHex(20)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// ValidAddress 校验钱包/受益人地址格式
func ValidAddress(addr string) bool {
	return common.IsHexAddress(addr)
}
