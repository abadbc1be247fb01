package scheduler

import (
	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/flamefund/ffs/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Job 调度任务接口
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	config    *config.Config
	campaign  *logic.CampaignLogic
}

// NewManager 创建新的任务管理器
func NewManager(cfg *config.Config, campaign *logic.CampaignLogic) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		config:    cfg,
		campaign:  campaign,
	}
}

// Start 启动任务管理器
func Start(cfg *config.Config, campaign *logic.CampaignLogic) *Manager {
	manager := NewManager(cfg, campaign)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.register(NewVelocityJob(m.campaign, m.config.Scheduler))
	m.register(NewMilestoneReleaseJob(m.campaign, m.config.Scheduler))
}

// register 注册单个任务，单例模式防止同一任务并发执行
func (m *Manager) register(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
