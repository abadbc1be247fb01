package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	ContributionsTotal   prometheus.Counter
	BurnedNativeTotal    prometheus.Counter
	RaisedNativeTotal    prometheus.Counter
	CampaignsCreated     *prometheus.CounterVec
	AchievementsAwarded  *prometheus.CounterVec
	MilestonesReleased   prometheus.Counter
	ContributionRejected *prometheus.CounterVec
}

// Business 全局指标实例
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		ContributionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ffs_contributions_total",
			Help: "The total number of accepted contributions",
		}),
		BurnedNativeTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ffs_burned_native_total",
			Help: "The total native amount burned",
		}),
		RaisedNativeTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ffs_raised_native_total",
			Help: "The total native amount credited to campaigns",
		}),
		CampaignsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ffs_campaigns_created_total",
			Help: "The total number of campaigns created",
		}, []string{"category"}),
		AchievementsAwarded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ffs_achievements_awarded_total",
			Help: "The total number of achievements awarded",
		}, []string{"type"}),
		MilestonesReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ffs_milestones_released_total",
			Help: "The total number of milestones with funds released",
		}),
		ContributionRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ffs_contributions_rejected_total",
			Help: "The total number of rejected contribution requests",
		}, []string{"reason"}),
	}
}
