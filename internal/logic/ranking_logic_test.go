package logic

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flamefund/ffs/internal/cache"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRankScore(t *testing.T) {
	tests := []struct {
		name        string
		contributed string
		burned      string
		supported   int64
		want        string
	}{
		{"只有贡献", "100", "0", 0, "100"},
		{"销毁加成20%", "100", "50", 0, "110"},
		{"支持加成10%", "100", "0", 10, "101"},
		{"三项叠加", "1000", "100", 5, "1020.5"},
		{"零用户", "0", "0", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{
				TotalContributed:   decimal.RequireFromString(tt.contributed),
				TotalBurned:        decimal.RequireFromString(tt.burned),
				CampaignsSupported: tt.supported,
			}
			got := RankScore(user)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"RankScore = %s, want %s", got, tt.want)
		})
	}
}

func rankingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "wallet_address", "total_contributed", "total_burned", "campaigns_supported"})
}

// TestRankAllOrdering 分数降序，同分按用户ID升序，名次为1..N稠密序列
func TestRankAllOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewRankingLogic(db, cache.New(config.RedisConfig{}))

	// 用户1与用户2同分100，用户3分数200
	mock.ExpectQuery(rankingSQL).WillReturnRows(rankingRows().
		AddRow(1, "0x1111111111111111111111111111111111111111", "90", "50", 0).
		AddRow(2, "0x2222222222222222222222222222222222222222", "100", "0", 0).
		AddRow(3, "0x3333333333333333333333333333333333333333", "200", "0", 0))

	ranked, err := r.rankAll()
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, int64(3), ranked[0].userId)

	// 同分时ID小的在前
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, int64(1), ranked[1].userId)
	assert.Equal(t, 3, ranked[2].Rank)
	assert.Equal(t, int64(2), ranked[2].userId)

	assert.Equal(t, "0x3333...3333", ranked[0].DisplayAddress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestTopContributorsLimit 超出 limit 的部分被截断
func TestTopContributorsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewRankingLogic(db, cache.New(config.RedisConfig{}))

	mock.ExpectQuery(rankingSQL).WillReturnRows(rankingRows().
		AddRow(1, "0x1111111111111111111111111111111111111111", "300", "0", 0).
		AddRow(2, "0x2222222222222222222222222222222222222222", "200", "0", 0).
		AddRow(3, "0x3333333333333333333333333333333333333333", "100", "0", 0))

	ranked, err := r.TopContributors(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.True(t, decimal.NewFromInt(300).Equal(ranked[0].Score))
	assert.True(t, decimal.NewFromInt(200).Equal(ranked[1].Score))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUserRank 未上榜用户返回0
func TestUserRank(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewRankingLogic(db, cache.New(config.RedisConfig{}))

	mock.ExpectQuery(rankingSQL).WillReturnRows(rankingRows().
		AddRow(7, "0x7777777777777777777777777777777777777777", "100", "0", 0))

	rank, err := r.UserRank(7)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	mock.ExpectQuery(rankingSQL).WillReturnRows(rankingRows())
	rank, err = r.UserRank(42)
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}
