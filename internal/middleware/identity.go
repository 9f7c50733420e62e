// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// 请求上下文中存放用户 ID 的 Key
const ContextUserIDKey = "user_id"

// 上游网关传递用户身份的请求头
const userIDHeader = "X-User-Id"

// IdentityMiddleware 创建用户身份中间件
// 认证和授权在上游网关完成，这里只负责把网关传递的用户 ID
// 放进请求上下文，让每个处理器显式拿到调用者身份
// 请求头缺失时使用配置的默认用户（开发环境兜底）
// 参数:
//   - defaultUserID: 默认用户 ID
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func IdentityMiddleware(defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userIDHeader))
		if userID == "" {
			userID = defaultUserID
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext 从请求上下文读取用户 ID
// 身份中间件保证该值总是存在
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
