package logic

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flamefund/ffs/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newRegexMockDB 正则匹配模式的mock库，用于语句由gorm生成的场景
func newRegexMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func burnDayRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "date", "daily_contribution_burn", "daily_creation_burn",
		"daily_total_burn", "campaigns_created", "contributions_made", "total_burn_to_date",
	})
}

// TestApplyBurn 分项累加后总量字段保持一致，累计值单调不减
func TestApplyBurn(t *testing.T) {
	day := &model.BurnStatsDay{
		Date:            "2026-08-28",
		TotalBurnToDate: decimal.NewFromInt(500),
	}

	applyBurn(day, decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, decimal.NewFromInt(10).Equal(day.DailyContributionBurn))
	assert.True(t, decimal.NewFromInt(10).Equal(day.DailyTotalBurn))
	assert.True(t, decimal.NewFromInt(510).Equal(day.TotalBurnToDate))
	assert.Equal(t, int64(1), day.ContributionsMade)
	assert.Equal(t, int64(0), day.CampaignsCreated)

	applyBurn(day, decimal.Zero, decimal.NewFromInt(25))
	assert.True(t, decimal.NewFromInt(25).Equal(day.DailyCreationBurn))
	assert.True(t, decimal.NewFromInt(35).Equal(day.DailyTotalBurn))
	assert.True(t, decimal.NewFromInt(535).Equal(day.TotalBurnToDate))
	assert.Equal(t, int64(1), day.CampaignsCreated)
	// 创建费销毁不计入贡献次数
	assert.Equal(t, int64(1), day.ContributionsMade)

	// 总量恒等于分项之和
	assert.True(t, day.DailyTotalBurn.Equal(day.DailyContributionBurn.Add(day.DailyCreationBurn)))
}

// TestLockDayCarryForward 新的一天从最近一行结转累计销毁量
func TestLockDayCarryForward(t *testing.T) {
	db, mock := newRegexMockDB(t)
	b := NewBurnStatsLogic(db)

	// 当日行不存在
	mock.ExpectQuery(`SELECT \* FROM "burn_stats" WHERE date = \$1.*FOR UPDATE`).
		WillReturnRows(burnDayRows())
	// 结转来源：最近一行
	mock.ExpectQuery(`SELECT \* FROM "burn_stats" ORDER BY date DESC`).
		WillReturnRows(burnDayRows().
			AddRow(7, "2026-08-27", "30", "25", "55", 1, 3, "500"))
	// 建行（测试未套事务，gorm默认事务包裹Create）后重新加锁读回
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "burn_stats"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "burn_stats" WHERE date = \$1.*FOR UPDATE`).
		WillReturnRows(burnDayRows().
			AddRow(8, "2026-08-28", "0", "0", "0", 0, 0, "500"))

	day, err := b.lockDay(db, "2026-08-28")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-28", day.Date)
	// 昨日累计被结转，当日分项从零起步
	assert.True(t, decimal.NewFromInt(500).Equal(day.TotalBurnToDate))
	assert.True(t, day.DailyTotalBurn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestLockDayExistingRow 当日行已存在时直接加锁返回，不再建行
func TestLockDayExistingRow(t *testing.T) {
	db, mock := newRegexMockDB(t)
	b := NewBurnStatsLogic(db)

	mock.ExpectQuery(`SELECT \* FROM "burn_stats" WHERE date = \$1.*FOR UPDATE`).
		WillReturnRows(burnDayRows().
			AddRow(8, "2026-08-28", "10", "25", "35", 1, 1, "535"))

	day, err := b.lockDay(db, "2026-08-28")
	require.NoError(t, err)

	assert.Equal(t, int64(8), day.Id)
	assert.True(t, decimal.NewFromInt(535).Equal(day.TotalBurnToDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}
