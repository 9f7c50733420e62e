// Package service 提供业务逻辑层的实现
package service

import (
	"context"
)

// 生成失败时返回给用户的兜底文案
// 一轮对话必须产生可展示的回复，生成器内部的任何失败都不向上传播
const apologyResponse = "죄송합니다. 일시적인 오류로 응답을 생성할 수 없습니다. 잠시 후 다시 시도해주세요."

// 未知分类的兜底文案
const unknownCategoryResponse = "해당 카테고리에 대한 정보를 찾을 수 없습니다."

// ResponseGenerator 回复生成器接口
// 给定分类和用户提问，返回回复文本
// 约定：不返回错误，内部失败时降级为兜底文案
// 生产实现调用外部 LLM 服务，测试和未接入 LLM 时使用固定回复
type ResponseGenerator interface {
	Generate(ctx context.Context, categoryCode, userQuery string) string
}

// StaticGenerator 固定回复生成器
// 按分类代码查表返回预置文案，不依赖任何外部服务
// LLM 接入之前的默认实现
type StaticGenerator struct {
	responses map[string]string
}

// NewStaticGenerator 创建 StaticGenerator 实例
// 预置文案覆盖全部种子分类
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{
		responses: map[string]string{
			"swdp_menu":    "🗺️ SWDP 메뉴 안내입니다.\n\n| 메뉴 | 설명 |\n|------|------|\n| 대시보드 | 프로젝트 현황 요약 |\n| 프로젝트 | 프로젝트 목록 및 관리 |\n| VOC | 고객 문의 관리 |\n\n자세한 내용은 각 메뉴에서 확인하실 수 있습니다.",
			"project":      "📊 프로젝트 현황 정보입니다.\n\n현재 진행 중인 프로젝트의 상태, 진행률, 팀원 정보를 조회할 수 있습니다. 구체적인 프로젝트명을 알려주시면 더 자세한 정보를 제공해 드리겠습니다.",
			"voc":          "🔔 VOC 문의 내역을 확인했습니다.\n\n접수된 문의와 장애 현황, 해결 상태를 분석하여 안내해 드립니다. 문의 번호나 기간을 알려주시면 상세 내역을 조회해 드리겠습니다.",
			"project_info": "📁 프로젝트 상세 정보입니다.\n\n기술 스택, 구성원, 저장소 정보 등 프로젝트의 세부사항을 안내해 드립니다.",
			"swdp_api":     "📚 SWDP API 문서 안내입니다.\n\nAPI 명세서, 인증 방법, 요청/응답 예제를 제공해 드립니다. 사용하려는 API 이름을 알려주세요.",
		},
	}
}

// Generate 按分类返回预置文案
// 未知分类返回兜底文案，不使请求失败
func (g *StaticGenerator) Generate(_ context.Context, categoryCode, _ string) string {
	if resp, ok := g.responses[categoryCode]; ok {
		return resp
	}
	return unknownCategoryResponse
}
