// Package cache 排行榜只读缓存
// redis 未启用时所有方法降级为直通，调用方无需判空
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flamefund/ffs/internal/config"
	"github.com/flamefund/ffs/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Cache 带TTL的JSON缓存
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New 按配置创建缓存，Enabled 为 false 时返回直通实例
func New(cfg config.RedisConfig) *Cache {
	if !cfg.Enabled {
		return &Cache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTL) * time.Second,
	}
}

// Get 读取缓存并反序列化到 dest，未命中或未启用返回 false
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn("cache payload for %s is corrupt: %v", key, err)
		return false
	}
	return true
}

// Set 序列化并写入缓存，失败只记日志不影响主流程
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal for %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("cache set %s failed: %v", key, err)
	}
}

// Close 释放redis连接
func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
