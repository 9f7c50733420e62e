// Package cache 提供 Redis 缓存操作的封装
// 缓存分类的系统提示词，避免每轮对话都查询数据库
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devvy-server/internal/config"
)

// 系统提示词缓存的过期时间
// 提示词更新时会主动删除缓存，过期时间只是兜底
const systemPromptTTL = time.Hour

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client // Redis 客户端实例
}

// NewRedisCache 创建 RedisCache 实例
// 参数:
//   - cfg: 应用配置（包含 Redis 连接信息）
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 检查 Redis 连接状态
// 健康检查接口使用
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ==================== 系统提示词缓存 ====================

// systemPromptKey 生成系统提示词的缓存 Key
func systemPromptKey(categoryCode string) string {
	return fmt.Sprintf("devvy:category:%s:system_prompt", categoryCode)
}

// GetSystemPrompt 读取缓存的系统提示词
// 参数:
//   - ctx: 上下文
//   - categoryCode: 分类代码
//
// 返回:
//   - string: 提示词，未命中时为空字符串
//   - bool: 是否命中缓存
//   - error: Redis 操作错误
func (c *RedisCache) GetSystemPrompt(ctx context.Context, categoryCode string) (string, bool, error) {
	val, err := c.client.Get(ctx, systemPromptKey(categoryCode)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetSystemPrompt 缓存系统提示词
// 参数:
//   - ctx: 上下文
//   - categoryCode: 分类代码
//   - prompt: 提示词内容
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) SetSystemPrompt(ctx context.Context, categoryCode, prompt string) error {
	return c.client.Set(ctx, systemPromptKey(categoryCode), prompt, systemPromptTTL).Err()
}

// DeleteSystemPrompt 删除缓存的系统提示词
// 提示词更新后调用，下次读取时回源数据库
// 参数:
//   - ctx: 上下文
//   - categoryCode: 分类代码
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) DeleteSystemPrompt(ctx context.Context, categoryCode string) error {
	return c.client.Del(ctx, systemPromptKey(categoryCode)).Err()
}
