package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignID(t *testing.T) {
	gen := NewRandom()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewCampaignID()
		require.Len(t, id, 12)
		for _, ch := range id {
			assert.True(t, strings.ContainsRune(campaignIDAlphabet, ch), "unexpected char %q in %s", ch, id)
		}
		seen[id] = true
	}
	// 键空间62^12，100次生成撞车说明实现有问题
	assert.Len(t, seen, 100)
}

func TestNewTransactionRef(t *testing.T) {
	ref := NewRandom().NewTransactionRef()
	require.Len(t, ref, 66)
	assert.True(t, strings.HasPrefix(ref, "0x"))
}

func TestNewWalletAddress(t *testing.T) {
	addr := NewRandom().NewWalletAddress()
	require.Len(t, addr, 42)
	assert.True(t, ValidAddress(addr))
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("0x742d35Cc6634C0532925a3b844Bc9e7595f08B4e"))
	assert.True(t, ValidAddress("0x0000000000000000000000000000000000000000"))

	assert.False(t, ValidAddress(""))
	assert.False(t, ValidAddress("0x742d"))
	assert.False(t, ValidAddress("742d35Cc6634C0532925a3b844Bc9e7595f08B4e00"))
	assert.False(t, ValidAddress("0xZZZd35Cc6634C0532925a3b844Bc9e7595f08B4e"))
}
