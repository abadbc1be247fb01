package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/flamefund/ffs/internal/cache"
	"github.com/flamefund/ffs/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 排名权重：贡献量 + 20%销毁加成 + 10%支持数加成
var (
	burnBonusWeight    = decimal.NewFromFloat(0.20)
	supportBonusWeight = decimal.NewFromFloat(0.10)
)

// RankScore 计算用户排名分
func RankScore(user *model.User) decimal.Decimal {
	burnBonus := user.TotalBurned.Mul(burnBonusWeight)
	supportBonus := decimal.NewFromInt(user.CampaignsSupported).Mul(supportBonusWeight)
	return user.TotalContributed.Add(burnBonus).Add(supportBonus)
}

// RankedUser 排行榜条目
type RankedUser struct {
	Rank               int             `json:"rank"`
	WalletAddress      string          `json:"wallet_address"`
	DisplayAddress     string          `json:"display_address"`
	Score              decimal.Decimal `json:"score"`
	TotalContributed   decimal.Decimal `json:"total_contributed"`
	TotalBurned        decimal.Decimal `json:"total_burned"`
	CampaignsSupported int64           `json:"campaigns_supported"`

	userId int64
}

// RankingLogic 排行榜引擎，贡献者的只读派生视图
type RankingLogic struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewRankingLogic 创建排行榜引擎
func NewRankingLogic(db *gorm.DB, c *cache.Cache) *RankingLogic {
	return &RankingLogic{db: db, cache: c}
}

// rankingSQL 只取有过贡献的用户参与排名
const rankingSQL = `SELECT id, wallet_address, total_contributed, total_burned, campaigns_supported FROM users WHERE total_contributed > 0`

// TopContributors 计算排行榜前 limit 名
// 按分数降序，同分按用户ID升序，名次为排序后的1..N稠密序列
func (r *RankingLogic) TopContributors(ctx context.Context, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		limit = 100
	}

	key := fmt.Sprintf("leaderboard:%d", limit)
	var cached []RankedUser
	if r.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	ranked, err := r.rankAll()
	if err != nil {
		return nil, err
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	r.cache.Set(ctx, key, ranked)
	return ranked, nil
}

// UserRank 返回指定用户的名次，未上榜返回0
func (r *RankingLogic) UserRank(userId int64) (int, error) {
	ranked, err := r.rankAll()
	if err != nil {
		return 0, err
	}
	for _, entry := range ranked {
		if entry.userId == userId {
			return entry.Rank, nil
		}
	}
	return 0, nil
}

// rankAll 计算全量排名
func (r *RankingLogic) rankAll() ([]RankedUser, error) {
	var users []model.User
	if err := r.db.Raw(rankingSQL).Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("查询排名用户失败: %w", err)
	}

	ranked := make([]RankedUser, 0, len(users))
	for i := range users {
		user := &users[i]
		ranked = append(ranked, RankedUser{
			WalletAddress:      user.WalletAddress,
			DisplayAddress:     user.DisplayAddress(),
			Score:              RankScore(user),
			TotalContributed:   user.TotalContributed,
			TotalBurned:        user.TotalBurned,
			CampaignsSupported: user.CampaignsSupported,
			userId:             user.Id,
		})
	}

	// 分数降序，同分按用户ID升序保证确定性
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Score.Equal(ranked[j].Score) {
			return ranked[i].Score.GreaterThan(ranked[j].Score)
		}
		return ranked[i].userId < ranked[j].userId
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
