package logic

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordSupporter 唯一索引插入是否生效决定首次支持判定
// 首次插入成行返回 true，重复支持（冲突无行生效）返回 false
func TestRecordSupporter(t *testing.T) {
	db, mock := newRegexMockDB(t)

	// 首次支持：插入生效
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "campaign_supporters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	first, err := recordSupporter(db, 5, 3)
	require.NoError(t, err)
	assert.True(t, first)

	// 同一钱包再次支持同一活动：冲突后无行生效
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "campaign_supporters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	repeat, err := recordSupporter(db, 5, 3)
	require.NoError(t, err)
	assert.False(t, repeat)

	assert.NoError(t, mock.ExpectationsWereMet())
}
