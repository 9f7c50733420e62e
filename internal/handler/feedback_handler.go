// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"devvy-server/internal/middleware"
	"devvy-server/internal/service"
	"devvy-server/pkg/response"
)

// FeedbackHandler 反馈请求处理器
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler 创建 FeedbackHandler 实例
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// SaveFeedback 保存用户反馈
// @Summary 提交反馈
// @Description 保存用户的评分和反馈内容
// @Tags 反馈
// @Accept json
// @Produce json
// @Param body body service.FeedbackRequest true "反馈内容"
// @Success 200 {object} response.Response
// @Router /api/v1/devvy/feedback [post]
func (h *FeedbackHandler) SaveFeedback(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "잘못된 요청 형식입니다.")
		return
	}

	if err := h.feedbackService.SaveFeedback(c.Request.Context(), userID, &req); err != nil {
		if service.IsValidationError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "피드백 저장 중 오류가 발생했습니다.")
		return
	}

	response.Success(c, nil, "피드백이 성공적으로 저장되었습니다.")
}
