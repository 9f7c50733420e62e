// Package service 提供业务逻辑层的实现
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"devvy-server/internal/config"
)

// LLMGenerator 调用外部 LLM 服务的回复生成器
// 使用 DashScope 文本生成 API，系统提示词来自分类配置
// 遵守 ResponseGenerator 的约定：任何失败（包括超时）都返回兜底文案
type LLMGenerator struct {
	cfg        config.AIConfig
	categories *CategoryService // 提供分类的系统提示词
	client     *http.Client
}

// NewLLMGenerator 创建 LLMGenerator 实例
// 客户端超时来自配置，默认 30 秒
func NewLLMGenerator(cfg config.AIConfig, categories *CategoryService) *LLMGenerator {
	return &LLMGenerator{
		cfg:        cfg,
		categories: categories,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// dashScopeRequest DashScope API 请求结构
type dashScopeRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"` // "message"
	} `json:"parameters"`
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// dashScopeResponse DashScope API 响应结构
type dashScopeResponse struct {
	Output struct {
		Choices []struct {
			Message dashScopeMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Generate 调用 LLM 生成回复
// 失败路径全部降级为兜底文案，调用方永远拿到可展示的文本
func (g *LLMGenerator) Generate(ctx context.Context, categoryCode, userQuery string) string {
	text, err := g.call(ctx, categoryCode, userQuery)
	if err != nil {
		log.Printf("[ERROR] llm generate failed: category=%s err=%v", categoryCode, err)
		return apologyResponse
	}
	return text
}

// call 执行一次 LLM 调用
// 超时由两层控制：请求携带的 ctx 和客户端自身的 Timeout
func (g *LLMGenerator) call(ctx context.Context, categoryCode, userQuery string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", fmt.Errorf("llm api key not configured")
	}

	systemPrompt, err := g.categories.GetSystemPrompt(ctx, categoryCode)
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}

	// 构造请求 Body
	dashReq := dashScopeRequest{
		Model: g.cfg.Model,
	}
	dashReq.Input.Messages = []dashScopeMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(userQuery)},
	}
	dashReq.Parameters.ResultFormat = "message"

	jsonData, err := json.Marshal(dashReq)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call llm service: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var dashResp dashScopeResponse
	if err := json.Unmarshal(bodyBytes, &dashResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}
	if dashResp.Code != "" {
		return "", fmt.Errorf("llm service error: %s - %s", dashResp.Code, dashResp.Message)
	}
	if len(dashResp.Output.Choices) == 0 {
		return "", fmt.Errorf("llm returned no content")
	}

	content := strings.TrimSpace(dashResp.Output.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("llm returned empty content")
	}
	return content, nil
}

// buildUserPrompt 生成用户提示词
func buildUserPrompt(userQuestion string) string {
	var b strings.Builder
	b.WriteString("사용자 질문: ")
	b.WriteString(userQuestion)
	b.WriteString("\n\n위 질문에 대해 답변해주세요. ")
	b.WriteString("만약 답변 내용이 목록, 현황, 비교, 통계, 데이터 등의 구조화된 정보라면 ")
	b.WriteString("마크다운 표 형태로 깔끔하게 정리해서 제공해주세요.")
	return b.String()
}
