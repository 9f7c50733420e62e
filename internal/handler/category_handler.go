// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"devvy-server/internal/middleware"
	"devvy-server/internal/service"
	"devvy-server/pkg/response"
)

// CategoryHandler 分类请求处理器
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler 实例
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories 获取分类列表
// @Summary 获取分类列表
// @Description 获取所有启用的聊天分类
// @Tags 分类
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /api/v1/devvy/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.InternalError(c, "카테고리 조회에 실패했습니다.")
		return
	}

	response.Success(c, categories, "카테고리 조회 성공")
}

// GetCategory 获取分类详情
// @Summary 获取分类详情
// @Tags 分类
// @Produce json
// @Param code path string true "分类代码"
// @Success 200 {object} response.Response{data=model.Category}
// @Router /api/v1/devvy/categories/{code} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	code := c.Param("code")

	category, err := h.categoryService.GetCategory(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "카테고리 조회에 실패했습니다.")
		return
	}

	response.Success(c, category, "카테고리 조회 성공")
}

// GetSystemPrompt 获取分类的系统提示词
// @Summary 获取系统提示词
// @Tags 分类
// @Produce json
// @Param code path string true "分类代码"
// @Success 200 {object} response.Response
// @Router /api/v1/devvy/categories/{code}/prompt [get]
func (h *CategoryHandler) GetSystemPrompt(c *gin.Context) {
	code := c.Param("code")

	prompt, err := h.categoryService.GetSystemPrompt(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "시스템 프롬프트 조회에 실패했습니다.")
		return
	}

	response.Success(c, gin.H{
		"categoryCode": code,
		"systemPrompt": prompt,
	}, "시스템 프롬프트 조회 성공")
}

// updatePromptRequest 更新系统提示词请求
type updatePromptRequest struct {
	SystemPrompt string `json:"systemPrompt"`
}

// UpdateSystemPrompt 更新分类的系统提示词
// @Summary 更新系统提示词
// @Tags 分类
// @Accept json
// @Produce json
// @Param code path string true "分类代码"
// @Param body body updatePromptRequest true "提示词内容"
// @Success 200 {object} response.Response
// @Router /api/v1/devvy/categories/{code}/prompt [put]
func (h *CategoryHandler) UpdateSystemPrompt(c *gin.Context) {
	code := c.Param("code")
	userID := middleware.UserIDFromContext(c)

	var req updatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "잘못된 요청 형식입니다.")
		return
	}

	err := h.categoryService.UpdateSystemPrompt(c.Request.Context(), code, req.SystemPrompt, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			response.NotFound(c, err.Error())
		case service.IsValidationError(err):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "시스템 프롬프트 업데이트에 실패했습니다.")
		}
		return
	}

	response.Success(c, nil, "시스템 프롬프트 업데이트 성공")
}
