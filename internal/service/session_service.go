// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devvy-server/internal/model"
	"devvy-server/internal/repository"
	"devvy-server/pkg/util"
)

// FirstMessage 字段的最大字符数，超长时按字符截断
const firstMessageMaxRunes = 500

// 会话服务相关错误
var (
	ErrSessionNotFound = errors.New("존재하지 않는 세션입니다.")
	ErrNoPermission    = errors.New("해당 세션에 접근할 수 없습니다.")
)

// SessionService 会话服务
// 负责会话的创建、归属验证和轮次记录
// 会话状态很简单：首条消息时创建，之后每轮更新元数据，没有终止状态
type SessionService struct {
	sessionRepo *repository.SessionRepository // 会话数据访问层
	messageRepo *repository.MessageRepository // 消息数据访问层
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	messageRepo *repository.MessageRepository,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
	}
}

// WithTx 返回绑定到指定事务的服务实例
// 一轮对话的会话解析和消息写入需要在同一个事务中完成
func (s *SessionService) WithTx(tx *gorm.DB) *SessionService {
	return &SessionService{
		sessionRepo: s.sessionRepo.WithTx(tx),
		messageRepo: s.messageRepo.WithTx(tx),
	}
}

// ResolveSession 解析请求中的会话
// 未携带 sessionId 时创建新会话并返回
// 携带 sessionId 时验证会话存在且属于该用户：
// 不存在返回 ErrSessionNotFound，属于其他用户返回 ErrNoPermission
// 两个不带 sessionId 的并发请求会各自创建一个会话，这是预期行为，
// 客户端在第一轮响应之后才拿到 sessionId
func (s *SessionService) ResolveSession(ctx context.Context, userID, categoryCode, requestedID, firstMessage string) (*model.Session, error) {
	if requestedID == "" {
		now := time.Now()
		session := &model.Session{
			SessionID:     util.GenerateSessionID(),
			UserID:        userID,
			CategoryCode:  categoryCode,
			FirstMessage:  util.TruncateRunes(firstMessage, firstMessageMaxRunes),
			MessageCount:  0,
			CreatedAt:     now,
			LastMessageAt: now,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	session, err := s.sessionRepo.GetByID(ctx, requestedID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrNoPermission
	}
	return session, nil
}

// VerifySession 验证会话存在且属于指定用户
// 不创建任何数据，聊天流程在调用生成器之前用它快速失败
func (s *SessionService) VerifySession(ctx context.Context, userID, sessionID string) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.UserID != userID {
		return ErrNoPermission
	}
	return nil
}

// RecordTurnCompleted 记录一轮完成的对话
// message_count 加 2，last_message_at 更新为当前时间
// 每轮成功的对话调用且只调用一次，失败路径不调用，
// 保证计数器和实际持久化的消息数量一致
func (s *SessionService) RecordTurnCompleted(ctx context.Context, sessionID string) error {
	return s.sessionRepo.RecordTurn(ctx, sessionID)
}

// GetChatHistory 获取用户的会话历史列表
// 按最后消息时间倒序排列
func (s *SessionService) GetChatHistory(ctx context.Context, userID string) ([]model.Session, error) {
	return s.sessionRepo.GetByUserID(ctx, userID)
}

// GetSessionMessages 获取会话的所有消息
// 先验证归属：其他用户的会话返回 ErrNoPermission 而不是 ErrSessionNotFound，
// 消息按创建时间正序排列
func (s *SessionService) GetSessionMessages(ctx context.Context, userID, sessionID string) ([]model.Message, error) {
	if err := s.VerifySession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.messageRepo.GetBySessionID(ctx, sessionID)
}
