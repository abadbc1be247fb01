package scheduler

import (
	"sync"
	"time"

	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// VelocityJob 募集速度刷新任务
// 速度只用于发现页排序，周期性重算落库即可
type VelocityJob struct {
	campaign *logic.CampaignLogic
	config   config.SchedulerConfig
}

// NewVelocityJob 创建速度刷新任务
func NewVelocityJob(campaign *logic.CampaignLogic, cfg config.SchedulerConfig) *VelocityJob {
	return &VelocityJob{
		campaign: campaign,
		config:   cfg,
	}
}

// GetName 获取任务名称
func (j *VelocityJob) GetName() string {
	return "velocity_refresh"
}

// GetSchedule 获取调度配置
func (j *VelocityJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.VelocityInterval) * time.Second)
}

// Execute 执行任务，用协程池并发刷新各活动
func (j *VelocityJob) Execute() {
	campaigns, err := j.campaign.ActiveCampaigns()
	if err != nil {
		logger.Error("Velocity refresh: fetch campaigns failed: %v", err)
		return
	}
	if len(campaigns) == 0 {
		return
	}

	poolSize := j.config.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Velocity refresh: create pool failed: %v", err)
		return
	}
	defer pool.Release()

	now := time.Now()
	var wg sync.WaitGroup
	for i := range campaigns {
		campaign := campaigns[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if err := j.campaign.RefreshVelocity(&campaign, now); err != nil {
				logger.Error("Velocity refresh for %s failed: %v", campaign.CampaignId, err)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Velocity refresh: submit task failed: %v", err)
		}
	}
	wg.Wait()

	logger.Debug("Velocity refresh completed for %d campaigns", len(campaigns))
}
