package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flamefund/ffs/internal/apperr"
	"github.com/flamefund/ffs/internal/model"
	"gorm.io/gorm"
)

// EngagementLogic 活动进展更新与留言
type EngagementLogic struct {
	db *gorm.DB
}

// NewEngagementLogic 创建互动逻辑
func NewEngagementLogic(db *gorm.DB) *EngagementLogic {
	return &EngagementLogic{db: db}
}

// PostUpdate 发布活动进展，仅限创建者
func (e *EngagementLogic) PostUpdate(campaignId, authorWallet, title, content, imageURL string) (*model.CampaignUpdate, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("更新标题与内容不能为空")
	}

	campaign, author, err := e.resolve(campaignId, authorWallet)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorId != author.Id {
		return nil, apperr.Authorization("只有活动创建者可以发布更新")
	}

	update := &model.CampaignUpdate{
		CampaignId: campaign.Id,
		Title:      title,
		Content:    content,
		ImageURL:   imageURL,
	}
	if err := e.db.Create(update).Error; err != nil {
		return nil, apperr.Dependency("create campaign update failed", err)
	}
	return update, nil
}

// PostComment 发布留言
func (e *EngagementLogic) PostComment(campaignId, authorWallet, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("留言内容不能为空")
	}

	campaign, author, err := e.resolve(campaignId, authorWallet)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		CampaignId: campaign.Id,
		UserId:     author.Id,
		Content:    content,
	}
	if err := e.db.Create(comment).Error; err != nil {
		return nil, apperr.Dependency("create comment failed", err)
	}
	return comment, nil
}

// Comments 返回活动的留言，倒序
func (e *EngagementLogic) Comments(campaignId string) ([]model.Comment, error) {
	var campaign model.Campaign
	if err := e.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("campaign %s not found", campaignId)
		}
		return nil, apperr.Dependency("query campaign failed", err)
	}

	var comments []model.Comment
	if err := e.db.Where("campaign_id = ?", campaign.Id).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("查询留言失败: %w", err)
	}
	return comments, nil
}

// Updates 返回活动的进展更新，倒序
func (e *EngagementLogic) Updates(campaignId string) ([]model.CampaignUpdate, error) {
	var campaign model.Campaign
	if err := e.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("campaign %s not found", campaignId)
		}
		return nil, apperr.Dependency("query campaign failed", err)
	}

	var updates []model.CampaignUpdate
	if err := e.db.Where("campaign_id = ?", campaign.Id).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("查询活动更新失败: %w", err)
	}
	return updates, nil
}

// resolve 解析活动与操作者
func (e *EngagementLogic) resolve(campaignId, wallet string) (*model.Campaign, *model.User, error) {
	var campaign model.Campaign
	if err := e.db.Where("campaign_id = ?", campaignId).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("campaign %s not found", campaignId)
		}
		return nil, nil, apperr.Dependency("query campaign failed", err)
	}

	var user model.User
	if err := e.db.Where("wallet_address = ?", wallet).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("user %s not found", wallet)
		}
		return nil, nil, apperr.Dependency("query user failed", err)
	}
	return &campaign, &user, nil
}
