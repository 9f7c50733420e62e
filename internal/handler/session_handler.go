// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"devvy-server/internal/middleware"
	"devvy-server/internal/service"
	"devvy-server/pkg/response"
)

// SessionHandler 会话请求处理器
// 提供会话历史列表和会话消息查询
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler 创建 SessionHandler 实例
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// GetChatHistory 获取当前用户的会话历史
// @Summary 获取会话历史
// @Description 获取当前用户的所有会话，按最后消息时间倒序排列
// @Tags 会话
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Session}
// @Router /api/v1/devvy/history [get]
func (h *SessionHandler) GetChatHistory(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sessions, err := h.sessionService.GetChatHistory(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "히스토리 조회에 실패했습니다.")
		return
	}

	response.Success(c, sessions, "히스토리 조회 성공")
}

// GetSessionMessages 获取会话的消息列表
// @Summary 获取会话消息
// @Description 获取指定会话的所有消息，按时间正序排列，只能访问自己的会话
// @Tags 会话
// @Produce json
// @Param sessionId path string true "会话ID"
// @Success 200 {object} response.Response{data=[]model.Message}
// @Router /api/v1/devvy/sessions/{sessionId}/messages [get]
func (h *SessionHandler) GetSessionMessages(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("sessionId")

	messages, err := h.sessionService.GetSessionMessages(c.Request.Context(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c, "세션 메시지 조회에 실패했습니다.")
		}
		return
	}

	response.Success(c, messages, "세션 메시지 조회 성공")
}
