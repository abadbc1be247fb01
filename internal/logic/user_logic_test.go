package logic

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "wallet_address", "total_contributed", "total_burned",
		"campaigns_supported", "campaigns_created",
	})
}

// TestLockUserTxUsesRowLock 贡献路径解析用户时必须带 FOR UPDATE 行锁
func TestLockUserTxUsesRowLock(t *testing.T) {
	db, mock := newRegexMockDB(t)
	wallet := "0x742d35Cc6634C0532925a3b844Bc9e7595f08B4e"

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE wallet_address = \$1.*FOR UPDATE`).
		WillReturnRows(userRows().AddRow(3, wallet, "100", "1", 1, 0))

	user, err := lockUserTx(db, wallet)
	require.NoError(t, err)

	assert.Equal(t, int64(3), user.Id)
	assert.Equal(t, wallet, user.WalletAddress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestResolveUserConcurrentCreate 插入被并发抢先（无行生效）时读回已有行
func TestResolveUserConcurrentCreate(t *testing.T) {
	db, mock := newRegexMockDB(t)
	wallet := "0x742d35Cc6634C0532925a3b844Bc9e7595f08B4e"

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE wallet_address = \$1`).
		WillReturnRows(userRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE wallet_address = \$1`).
		WillReturnRows(userRows().AddRow(9, wallet, "0", "0", 0, 0))

	user, err := getOrCreateUserTx(db, wallet)
	require.NoError(t, err)

	assert.Equal(t, int64(9), user.Id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
