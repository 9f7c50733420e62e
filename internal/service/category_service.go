// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"devvy-server/internal/model"
	"devvy-server/internal/repository"
	"devvy-server/pkg/util"
)

// 系统提示词的最大长度（按 Unicode 字符计数）
const maxSystemPromptLength = 5000

// 分类服务相关错误
// 错误文案直接作为响应里的 errorMessage 返回给前端
var (
	ErrCategoryNotFound = errors.New("존재하지 않는 카테고리입니다.")
	ErrPromptRequired   = errors.New("시스템 프롬프트는 필수입니다.")
	ErrPromptTooLong    = errors.New("시스템 프롬프트는 5000자를 초과할 수 없습니다.")
)

// PromptCache 系统提示词缓存接口
// 由 internal/cache 的 RedisCache 实现，测试时可以传 nil 关闭缓存
type PromptCache interface {
	GetSystemPrompt(ctx context.Context, categoryCode string) (string, bool, error)
	SetSystemPrompt(ctx context.Context, categoryCode, prompt string) error
	DeleteSystemPrompt(ctx context.Context, categoryCode string) error
}

// CategoryService 分类服务
// 分类是只读的基础数据，决定回复策略和系统提示词
// 唯一的写操作是更新系统提示词
type CategoryService struct {
	categoryRepo *repository.CategoryRepository // 分类数据访问层
	cache        PromptCache                    // 提示词缓存，可以为 nil
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(categoryRepo *repository.CategoryRepository, cache PromptCache) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// ListCategories 获取所有启用的分类
// 按 sort_order 和 code 排序
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// GetCategory 根据代码获取分类
// 分类不存在或已停用时返回 ErrCategoryNotFound
func (s *CategoryService) GetCategory(ctx context.Context, code string) (*model.Category, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// IsValidCategory 检查分类代码是否有效
// 校验请求时使用，不产生错误，数据库故障时按无效处理
func (s *CategoryService) IsValidCategory(ctx context.Context, code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	exists, err := s.categoryRepo.ExistsByCode(ctx, code)
	if err != nil {
		log.Printf("[ERROR] category existence check failed: %v", err)
		return false
	}
	return exists
}

// GetSystemPrompt 获取分类的系统提示词
// 优先读缓存，其次读数据库，数据库没有配置时使用内置的默认提示词
func (s *CategoryService) GetSystemPrompt(ctx context.Context, code string) (string, error) {
	if s.cache != nil {
		prompt, ok, err := s.cache.GetSystemPrompt(ctx, code)
		if err != nil {
			// 缓存故障不影响主流程
			log.Printf("[WARN] prompt cache read failed: %v", err)
		} else if ok {
			return prompt, nil
		}
	}

	category, err := s.GetCategory(ctx, code)
	if err != nil {
		return "", err
	}

	prompt := ""
	if category.SystemPrompt != nil {
		prompt = strings.TrimSpace(*category.SystemPrompt)
	}
	if prompt == "" {
		prompt = defaultSystemPrompt(code)
	}

	if s.cache != nil {
		if err := s.cache.SetSystemPrompt(ctx, code, prompt); err != nil {
			log.Printf("[WARN] prompt cache write failed: %v", err)
		}
	}
	return prompt, nil
}

// UpdateSystemPrompt 更新分类的系统提示词
// 更新成功后删除缓存，下次读取时回源数据库
func (s *CategoryService) UpdateSystemPrompt(ctx context.Context, code, prompt, userID string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrPromptRequired
	}
	if utf8.RuneCountInString(prompt) > maxSystemPromptLength {
		return ErrPromptTooLong
	}

	rows, err := s.categoryRepo.UpdateSystemPrompt(ctx, code, prompt)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}

	log.Printf("[INFO] system prompt updated: category=%s user=%s", code, userID)

	if s.cache != nil {
		if err := s.cache.DeleteSystemPrompt(ctx, code); err != nil {
			log.Printf("[WARN] prompt cache invalidation failed: %v", err)
		}
	}
	return nil
}

// DefaultCategories 返回种子分类数据
// 启动迁移后写入，已存在的分类不会被覆盖
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Code:        "swdp_menu",
			Name:        "SWDP 메뉴",
			Description: "SWDP 메뉴 구조 및 기능 안내",
			Icon:        util.StringPtr("map"),
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Code:        "project",
			Name:        "프로젝트",
			Description: "프로젝트 관리 및 현황 분석",
			Icon:        util.StringPtr("bar-chart"),
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Code:        "voc",
			Name:        "VOC",
			Description: "VOC(고객의 소리) 관리 및 이슈 분석",
			Icon:        util.StringPtr("bell"),
			SortOrder:   3,
			IsActive:    true,
		},
		{
			Code:        "project_info",
			Name:        "프로젝트 정보",
			Description: "프로젝트 상세 정보 및 기술 스택",
			Icon:        util.StringPtr("folder"),
			SortOrder:   4,
			IsActive:    true,
		},
		{
			Code:        "swdp_api",
			Name:        "SWDP API",
			Description: "SWDP API 문서 및 사용법 안내",
			Icon:        util.StringPtr("book"),
			SortOrder:   5,
			IsActive:    true,
		},
	}
}

// defaultSystemPrompt 生成分类的默认系统提示词
// 数据库没有配置提示词时使用
func defaultSystemPrompt(code string) string {
	var b strings.Builder

	b.WriteString("당신은 SWP(Software Platform) 전문 AI 어시스턴트입니다.\n")
	b.WriteString("사용자의 질문에 정확하고 도움이 되는 답변을 제공해야 합니다.\n\n")

	switch code {
	case "swdp_menu":
		b.WriteString("전문 분야: SWDP 메뉴 구조 및 기능 안내\n")
		b.WriteString("주요 역할: 사용자가 SWDP 시스템의 메뉴와 기능을 이해할 수 있도록 도와줍니다.\n")
	case "project":
		b.WriteString("전문 분야: 프로젝트 관리 및 현황 분석\n")
		b.WriteString("주요 역할: 프로젝트 상태, 진행률, 팀원 정보 등을 제공합니다.\n")
	case "voc":
		b.WriteString("전문 분야: VOC(고객의 소리) 관리 및 이슈 분석\n")
		b.WriteString("주요 역할: 사용자 문의, 장애 현황, 해결 상태를 분석하고 보고합니다.\n")
	case "project_info":
		b.WriteString("전문 분야: 프로젝트 상세 정보 및 기술 스택\n")
		b.WriteString("주요 역할: 프로젝트의 기술적 세부사항과 구성원 정보를 제공합니다.\n")
	case "swdp_api":
		b.WriteString("전문 분야: SWDP API 문서 및 사용법 안내\n")
		b.WriteString("주요 역할: API 명세서, 인증 방법, 요청/응답 예제를 제공합니다.\n")
	default:
		b.WriteString("전문 분야: 일반 소프트웨어 개발 플랫폼 지원\n")
		b.WriteString("주요 역할: 개발 관련 질문에 대한 종합적인 답변을 제공합니다.\n")
	}

	b.WriteString("\n응답 규칙:\n")
	b.WriteString("1. 한국어로 답변하세요.\n")
	b.WriteString("2. 정확하고 구체적인 정보를 제공하세요.\n")
	b.WriteString("3. 목록, 현황, 비교, 통계 등의 정보는 마크다운 표 형태로 제공하세요.\n")
	b.WriteString("4. 표가 적절하지 않은 일반적인 질문은 자연스러운 텍스트로 답변하세요.\n")

	return b.String()
}
