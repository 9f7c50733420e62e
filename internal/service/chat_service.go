// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"devvy-server/internal/config"
	"devvy-server/internal/model"
	"devvy-server/internal/repository"
)

// 聊天请求校验相关错误
// 错误文案直接作为响应里的 errorMessage 返回给前端
var (
	ErrCategoryRequired = errors.New("카테고리 코드는 필수입니다.")
	ErrQueryRequired    = errors.New("질문 내용은 필수입니다.")
	ErrQueryTooLong     = errors.New("질문은 1000자를 초과할 수 없습니다.")
)

// IsValidationError 判断是否为请求校验错误
// 处理器用它把校验失败映射为 400，与真正的服务端错误区分开
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCategoryRequired) ||
		errors.Is(err, ErrQueryRequired) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrRatingOutOfRange) ||
		errors.Is(err, ErrCommentTooLong) ||
		errors.Is(err, ErrPromptRequired) ||
		errors.Is(err, ErrPromptTooLong)
}

// ChatRequest 聊天请求
type ChatRequest struct {
	CategoryCode string `json:"categoryCode"` // 分类代码，必填
	UserQuery    string `json:"userQuery"`    // 用户提问，必填
	SessionID    string `json:"sessionId"`    // 会话ID，为空时创建新会话
}

// ChatResult 聊天响应
type ChatResult struct {
	SessionID string    `json:"sessionId"` // 会话ID，新会话时由服务端生成
	Response  string    `json:"response"`  // AI 回复内容
	Timestamp time.Time `json:"timestamp"` // 响应时间
}

// ChatService 聊天服务
// 编排一轮完整的对话：校验 → 解析会话 → 写入用户消息 → 生成回复 →
// 写入 AI 消息 → 更新会话元数据
type ChatService struct {
	db          *gorm.DB                      // 事务入口
	sessions    *SessionService               // 会话服务
	messageRepo *repository.MessageRepository // 消息数据访问层
	categories  *CategoryService              // 分类服务，用于校验
	generator   ResponseGenerator             // 回复生成器
	chatCfg     config.ChatConfig             // 长度限制等业务配置
}

// NewChatService 创建 ChatService 实例
func NewChatService(
	db *gorm.DB,
	sessions *SessionService,
	messageRepo *repository.MessageRepository,
	categories *CategoryService,
	generator ResponseGenerator,
	chatCfg config.ChatConfig,
) *ChatService {
	return &ChatService{
		db:          db,
		sessions:    sessions,
		messageRepo: messageRepo,
		categories:  categories,
		generator:   generator,
		chatCfg:     chatCfg,
	}
}

// ProcessChatTurn 处理一轮对话
// 校验在任何持久化之前完成，非法请求不会留下半条数据
// 回复生成在事务之外执行（可能是耗时的网络调用，不应占用数据库事务），
// 生成器约定不失败，超时等异常会降级为兜底文案并照常入库，
// 所以不会出现只有用户消息没有 AI 回复的"半轮"数据
// 会话解析、两条消息写入和轮次记录在同一个事务中，
// 持久化失败时整轮回滚
func (s *ChatService) ProcessChatTurn(ctx context.Context, userID string, req *ChatRequest) (*ChatResult, error) {
	query, err := s.validateChatRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// 续接已有会话时先验证归属，避免无效请求触发一次完整的 LLM 调用
	if req.SessionID != "" {
		if err := s.sessions.VerifySession(ctx, userID, req.SessionID); err != nil {
			return nil, err
		}
	}

	responseText := s.generator.Generate(ctx, req.CategoryCode, query)

	var session *model.Session
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txSessions := s.sessions.WithTx(tx)
		txMessages := s.messageRepo.WithTx(tx)

		session, err = txSessions.ResolveSession(ctx, userID, req.CategoryCode, req.SessionID, query)
		if err != nil {
			return err
		}

		userMessage := &model.Message{
			SessionID:    session.SessionID,
			UserID:       userID,
			CategoryCode: req.CategoryCode,
			MessageType:  model.MessageTypeUser,
			Content:      query,
		}
		if err := txMessages.Create(ctx, userMessage); err != nil {
			return err
		}

		aiMessage := &model.Message{
			SessionID:    session.SessionID,
			UserID:       userID,
			CategoryCode: req.CategoryCode,
			MessageType:  model.MessageTypeAI,
			Content:      responseText,
		}
		if err := txMessages.Create(ctx, aiMessage); err != nil {
			return err
		}

		return txSessions.RecordTurnCompleted(ctx, session.SessionID)
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrNoPermission) {
			return nil, err
		}
		log.Printf("[ERROR] chat turn persistence failed: user=%s category=%s err=%v", userID, req.CategoryCode, err)
		return nil, err
	}

	return &ChatResult{
		SessionID: session.SessionID,
		Response:  responseText,
		Timestamp: time.Now(),
	}, nil
}

// validateChatRequest 校验聊天请求
// 返回去掉首尾空白后的提问内容
// 长度按 Unicode 字符（rune）计数，多字节文本不会被高估
// 分类查询的数据库错误原样上抛，存储故障要映射为服务端错误而不是参数错误
func (s *ChatService) validateChatRequest(ctx context.Context, req *ChatRequest) (string, error) {
	if strings.TrimSpace(req.CategoryCode) == "" {
		return "", ErrCategoryRequired
	}
	if _, err := s.categories.GetCategory(ctx, req.CategoryCode); err != nil {
		return "", err
	}

	query := strings.TrimSpace(req.UserQuery)
	if query == "" {
		return "", ErrQueryRequired
	}
	if utf8.RuneCountInString(query) > s.chatCfg.MaxQueryLength {
		return "", ErrQueryTooLong
	}
	return query, nil
}
