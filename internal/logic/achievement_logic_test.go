package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/model"
	"github.com/flamefund/ffs/internal/monitor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedgerConfig() config.LedgerConfig {
	return config.LedgerConfig{
		AchievementThresholds: map[string]float64{
			"fire_starter":       100,
			"flame_fanatic":      1000,
			"inferno_king":       10000,
			"first_contribution": 100,
			"big_spender":        10000,
			"support_10":         10,
		},
	}
}

func TestDueAchievements(t *testing.T) {
	cfg := testLedgerConfig()

	tests := []struct {
		name        string
		contributed string
		burned      string
		supported   int64
		held        map[model.AchievementType]bool
		want        []model.AchievementType
	}{
		{
			name: "新用户无成就", contributed: "0", burned: "0", supported: 0,
			want: nil,
		},
		{
			name: "只有贡献侧达标", contributed: "100", burned: "1", supported: 1,
			// 贡献满100同时销毁不足100，只有贡献侧达标
			want: []model.AchievementType{model.AchievementFirstContribution},
		},
		{
			name: "销毁恰好达阈值", contributed: "100", burned: "100", supported: 1,
			want: []model.AchievementType{model.AchievementFireStarter, model.AchievementFirstContribution},
		},
		{
			name: "大户一次集齐", contributed: "10000", burned: "10000", supported: 10,
			want: []model.AchievementType{
				model.AchievementFireStarter,
				model.AchievementFlameFanatic,
				model.AchievementInfernoKing,
				model.AchievementFirstContribution,
				model.AchievementBigSpender,
				model.AchievementSupport10,
			},
		},
		{
			name: "已持有的不重复授予", contributed: "10000", burned: "10000", supported: 10,
			held: map[model.AchievementType]bool{
				model.AchievementFireStarter:       true,
				model.AchievementFirstContribution: true,
			},
			want: []model.AchievementType{
				model.AchievementFlameFanatic,
				model.AchievementInfernoKing,
				model.AchievementBigSpender,
				model.AchievementSupport10,
			},
		},
		{
			name: "阈值下方差一点不给", contributed: "99.999999999999999999", burned: "999.999999999999999999", supported: 9,
			held: map[model.AchievementType]bool{model.AchievementFireStarter: true},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{
				TotalContributed:   decimal.RequireFromString(tt.contributed),
				TotalBurned:        decimal.RequireFromString(tt.burned),
				CampaignsSupported: tt.supported,
			}
			got := DueAchievements(user, cfg, tt.held)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDueAchievementsIdempotent 把已授予的全部标记为持有后，再评估不得产出任何新条目
func TestDueAchievementsIdempotent(t *testing.T) {
	cfg := testLedgerConfig()
	user := &model.User{
		TotalContributed:   decimal.NewFromInt(10000),
		TotalBurned:        decimal.NewFromInt(10000),
		CampaignsSupported: 10,
	}

	held := map[model.AchievementType]bool{}
	first := DueAchievements(user, cfg, held)
	assert.Len(t, first, 6)

	for _, at := range first {
		held[at] = true
	}
	second := DueAchievements(user, cfg, held)
	assert.Empty(t, second)
}

func initTestMetrics() {
	if monitor.Business == nil {
		monitor.InitBusinessMetrics()
	}
}

// TestEvaluateCountsAfterCommit 成就计数在事务提交后累加
func TestEvaluateCountsAfterCommit(t *testing.T) {
	db, mock := newRegexMockDB(t)
	initTestMetrics()
	a := NewAchievementLogic(db, testLedgerConfig())

	counter := monitor.Business.AchievementsAwarded.WithLabelValues(string(model.AchievementFireStarter))
	before := testutil.ToFloat64(counter)

	// 只有销毁一档达标，恰好授予一条
	user := &model.User{Id: 3, TotalBurned: decimal.NewFromInt(100)}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "achievements" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	awarded, err := a.Evaluate(user, time.Now())
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, model.AchievementFireStarter, awarded[0].AchievementType)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestEvaluateRollbackLeavesMetricUntouched 回滚的授予不污染计数
func TestEvaluateRollbackLeavesMetricUntouched(t *testing.T) {
	db, mock := newRegexMockDB(t)
	initTestMetrics()
	a := NewAchievementLogic(db, testLedgerConfig())

	counter := monitor.Business.AchievementsAwarded.WithLabelValues(string(model.AchievementFireStarter))
	before := testutil.ToFloat64(counter)

	user := &model.User{Id: 3, TotalBurned: decimal.NewFromInt(100)}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "achievements" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "achievements"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := a.Evaluate(user, time.Now())
	require.Error(t, err)

	assert.Equal(t, before, testutil.ToFloat64(counter))
	assert.NoError(t, mock.ExpectationsWereMet())
}
