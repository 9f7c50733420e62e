// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"devvy-server/internal/middleware"
	"devvy-server/internal/service"
	"devvy-server/pkg/response"
)

// ChatHandler 聊天请求处理器
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat 处理一轮对话
// @Summary 发送聊天消息
// @Description 处理用户提问并返回 AI 回复，sessionId 为空时创建新会话
// @Tags 聊天
// @Accept json
// @Produce json
// @Param body body service.ChatRequest true "聊天请求"
// @Success 200 {object} response.Response{data=service.ChatResult}
// @Router /api/v1/devvy/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "잘못된 요청 형식입니다.")
		return
	}

	result, err := h.chatService.ProcessChatTurn(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case service.IsValidationError(err):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, err.Error())
		default:
			// 持久化等内部错误不向前端暴露细节
			response.InternalError(c, "채팅 처리 중 오류가 발생했습니다.")
		}
		return
	}

	response.Success(c, result, "AI 응답 생성 성공")
}
