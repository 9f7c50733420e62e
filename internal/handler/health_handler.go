// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"devvy-server/pkg/response"
)

// Pinger 依赖健康检查接口
// RedisCache 实现了它
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查处理器
// 探测持久化层和缓存的可用性
type HealthHandler struct {
	db    *gorm.DB
	cache Pinger // 可以为 nil（如测试环境没有 Redis）
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Check 执行健康检查
// 数据库或 Redis 不可用时返回 503
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Printf("[ERROR] health check: database unreachable: %v", err)
		response.ServiceUnavailable(c, "데이터베이스 연결에 실패했습니다.")
		return
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			log.Printf("[ERROR] health check: redis unreachable: %v", err)
			response.ServiceUnavailable(c, "캐시 서버 연결에 실패했습니다.")
			return
		}
	}

	response.Success(c, gin.H{
		"status":  "OK",
		"service": "Devvy Bot API",
	}, "시스템 상태 정상")
}
