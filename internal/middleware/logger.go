// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware 创建请求日志中间件
// 记录每个请求的方法、路径、状态码和耗时
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		// 处理请求
		c.Next()

		latency := time.Since(start).Truncate(time.Microsecond)
		statusCode := c.Writer.Status()

		logLine := fmt.Sprintf("%3d | %12s | %-15s | %-7s %s",
			statusCode, latency, c.ClientIP(), c.Request.Method, path)

		// 追加处理器记录的错误信息（如果有）
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			logLine += " | " + errs
		}

		// 根据状态码选择日志级别
		// 4xx 是预期内的客户端错误，5xx 才是真正的服务端错误
		switch {
		case statusCode >= 500:
			log.Printf("[ERROR] %s", logLine)
		case statusCode >= 400:
			log.Printf("[WARN] %s", logLine)
		default:
			log.Printf("[INFO] %s", logLine)
		}
	}
}
