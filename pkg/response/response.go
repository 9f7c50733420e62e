// Package response 提供统一的 HTTP 响应格式
// 所有 API 都使用相同的响应结构，便于前端处理
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// success: 请求是否成功
// data: 响应数据，成功时可选携带
// message: 成功时的提示信息
// errorMessage: 失败时的错误信息，不暴露内部细节
// timestamp: 响应时间
type Response struct {
	Success      bool        `json:"success"`                // 是否成功
	Data         interface{} `json:"data,omitempty"`         // 响应数据，可选
	Message      string      `json:"message,omitempty"`      // 提示信息
	ErrorMessage string      `json:"errorMessage,omitempty"` // 错误信息
	Timestamp    time.Time   `json:"timestamp"`              // 响应时间
}

// Success 返回成功响应
// 参数:
//   - c: Gin 上下文
//   - data: 响应数据，可以是任意类型
//   - message: 提示信息
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Error 返回错误响应
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - errorMessage: 错误信息
func Error(c *gin.Context, httpCode int, errorMessage string) {
	c.JSON(httpCode, Response{
		Success:      false,
		ErrorMessage: errorMessage,
		Timestamp:    time.Now(),
	})
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Forbidden 返回 403 错误（禁止访问）
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, errorMessage)
}

// NotFound 返回 404 错误（资源不存在）
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, errorMessage)
}

// ServiceUnavailable 返回 503 错误（依赖服务不可用）
// 健康检查失败时使用
func ServiceUnavailable(c *gin.Context, errorMessage string) {
	Error(c, http.StatusServiceUnavailable, errorMessage)
}
