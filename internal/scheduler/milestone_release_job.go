package scheduler

import (
	"time"

	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// MilestoneReleaseJob 里程碑资金释放任务
// 募集总额覆盖某阶段所需金额后，把该阶段标记为完成并按释放表记录放款比例
type MilestoneReleaseJob struct {
	campaign *logic.CampaignLogic
	config   config.SchedulerConfig
}

// NewMilestoneReleaseJob 创建里程碑释放任务
func NewMilestoneReleaseJob(campaign *logic.CampaignLogic, cfg config.SchedulerConfig) *MilestoneReleaseJob {
	return &MilestoneReleaseJob{
		campaign: campaign,
		config:   cfg,
	}
}

// GetName 获取任务名称
func (j *MilestoneReleaseJob) GetName() string {
	return "milestone_release"
}

// GetSchedule 获取调度配置
func (j *MilestoneReleaseJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.MilestoneInterval) * time.Second)
}

// Execute 执行任务
func (j *MilestoneReleaseJob) Execute() {
	campaigns, err := j.campaign.ActiveCampaigns()
	if err != nil {
		logger.Error("Milestone release: fetch campaigns failed: %v", err)
		return
	}

	now := time.Now()
	released := 0
	for i := range campaigns {
		n, err := j.campaign.ReleaseDueMilestones(&campaigns[i], now)
		if err != nil {
			logger.Error("Milestone release for %s failed: %v", campaigns[i].CampaignId, err)
			continue
		}
		released += n
	}

	if released > 0 {
		logger.Info("Milestone release completed. Released %d milestone(s)", released)
	}
}
