package config

import (
	"time"

	"github.com/flamefund/ffs/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Oracle    OracleConfig    `mapstructure:"oracle"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig 排行榜缓存配置，Enabled 为 false 时不连接
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // 秒
}

// OracleConfig 价格预言机配置
type OracleConfig struct {
	FixedPrice float64 `mapstructure:"fixed_price"` // 每原生单位的法币价格
	TimeoutMs  int     `mapstructure:"timeout_ms"`  // 单次查询超时（毫秒）
}

// LedgerConfig 账本经济参数
type LedgerConfig struct {
	BurnRate              float64            `mapstructure:"burn_rate"`              // 贡献销毁比例，如0.01
	DefaultCreationFee    float64            `mapstructure:"default_creation_fee"`   // 未知类别的创建费
	CreationFees          map[string]float64 `mapstructure:"creation_fees"`          // 按类别的创建费（原生单位，全额销毁）
	AchievementThresholds map[string]float64 `mapstructure:"achievement_thresholds"` // 成就阈值
	MilestoneReleases     map[int]int        `mapstructure:"milestone_releases"`     // 进度阶段 -> 可释放百分比
}

type SchedulerConfig struct {
	VelocityInterval  int `mapstructure:"velocity_interval"`  // 秒
	MilestoneInterval int `mapstructure:"milestone_interval"` // 秒
	PoolSize          int `mapstructure:"pool_size"`          // 速度刷新协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// Timeout 单次预言机查询超时
func (o OracleConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

// BurnRateDecimal 销毁比例的精确表示
func (l LedgerConfig) BurnRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(l.BurnRate)
}

// CreationFee 返回类别对应的创建费，未知类别回落到默认值
func (l LedgerConfig) CreationFee(category string) decimal.Decimal {
	if fee, ok := l.CreationFees[category]; ok {
		return decimal.NewFromFloat(fee)
	}
	return decimal.NewFromFloat(l.DefaultCreationFee)
}

// AchievementThreshold 返回成就阈值的精确表示
func (l LedgerConfig) AchievementThreshold(name string) decimal.Decimal {
	return decimal.NewFromFloat(l.AchievementThresholds[name])
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/ffs")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "fundburn")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", 60)
	viper.SetDefault("oracle.fixed_price", 0.00015)
	viper.SetDefault("oracle.timeout_ms", 2000)
	viper.SetDefault("ledger.burn_rate", 0.01)
	viper.SetDefault("ledger.default_creation_fee", 25)
	viper.SetDefault("ledger.creation_fees", map[string]float64{
		"personal":    25,
		"business":    50,
		"charity":     15,
		"emergency":   10,
		"creative":    25,
		"education":   25,
		"medical":     15,
		"community":   25,
		"technology":  50,
		"environment": 25,
		"animal":      20,
		"other":       25,
	})
	viper.SetDefault("ledger.achievement_thresholds", map[string]float64{
		"fire_starter":       100,
		"flame_fanatic":      1000,
		"inferno_king":       10000,
		"first_contribution": 100,
		"big_spender":        10000,
		"support_10":         10,
	})
	viper.SetDefault("ledger.milestone_releases", map[int]int{
		25:  20,
		50:  40,
		75:  60,
		100: 100,
	})
	viper.SetDefault("scheduler.velocity_interval", 300)
	viper.SetDefault("scheduler.milestone_interval", 60)
	viper.SetDefault("scheduler.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
