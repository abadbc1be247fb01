package logic

import (
	"errors"
	"fmt"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// GetOrCreateUser 按钱包地址获取用户，首次交互时惰性创建
func (u *UserLogic) GetOrCreateUser(walletAddress string) (*model.User, error) {
	return resolveUserTx(u.db, walletAddress, false)
}

// getOrCreateUserTx 在指定事务/连接上解析用户
func getOrCreateUserTx(tx *gorm.DB, walletAddress string) (*model.User, error) {
	return resolveUserTx(tx, walletAddress, false)
}

// lockUserTx 解析用户并对其行加 FOR UPDATE 锁
// 贡献流程在锁内读取累计值评估成就，同一钱包的并发贡献按序通过阈值判定
func lockUserTx(tx *gorm.DB, walletAddress string) (*model.User, error) {
	return resolveUserTx(tx, walletAddress, true)
}

// resolveUserTx 在指定事务/连接上解析用户
// 并发首次创建依赖 wallet_address 唯一索引，冲突后重新读取
func resolveUserTx(tx *gorm.DB, walletAddress string, forUpdate bool) (*model.User, error) {
	var user model.User
	err := userQuery(tx, forUpdate).Where("wallet_address = ?", walletAddress).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Dependency("query user failed", err)
	}

	user = model.User{WalletAddress: walletAddress}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}},
		DoNothing: true,
	}).Create(&user)
	if result.Error != nil {
		return nil, apperr.Dependency("create user failed", result.Error)
	}
	if result.RowsAffected == 0 {
		// 并发创建被别的请求抢先，读回已有行
		if err := userQuery(tx, forUpdate).Where("wallet_address = ?", walletAddress).First(&user).Error; err != nil {
			return nil, apperr.Dependency("reload user failed", err)
		}
	}
	return &user, nil
}

func userQuery(tx *gorm.DB, forUpdate bool) *gorm.DB {
	if forUpdate {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// GetUser 按钱包地址查询用户
func (u *UserLogic) GetUser(walletAddress string) (*model.User, error) {
	var user model.User
	if err := u.db.Where("wallet_address = ?", walletAddress).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s not found", walletAddress)
		}
		return nil, apperr.Dependency("query user failed", err)
	}
	return &user, nil
}

// UserProfile 用户主页数据
type UserProfile struct {
	User             model.User          `json:"user"`
	CreatedCampaigns []model.Campaign    `json:"created_campaigns"`
	Contributions    []model.Contribution `json:"contributions"`
	Achievements     []model.Achievement `json:"achievements"`
	Rank             int                 `json:"rank"` // 0 表示未上榜
}

// GetProfile 汇总用户主页数据
func (u *UserLogic) GetProfile(walletAddress string) (*UserProfile, error) {
	user, err := u.GetUser(walletAddress)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: *user}

	if err := u.db.Where("creator_id = ?", user.Id).
		Order("created_at DESC").
		Find(&profile.CreatedCampaigns).Error; err != nil {
		return nil, fmt.Errorf("查询用户创建的活动失败: %w", err)
	}

	if err := u.db.Where("contributor_id = ?", user.Id).
		Order("created_at DESC").
		Limit(50).
		Find(&profile.Contributions).Error; err != nil {
		return nil, fmt.Errorf("查询用户贡献记录失败: %w", err)
	}

	if err := u.db.Where("user_id = ?", user.Id).
		Order("earned_at DESC").
		Find(&profile.Achievements).Error; err != nil {
		return nil, fmt.Errorf("查询用户成就失败: %w", err)
	}

	return profile, nil
}
