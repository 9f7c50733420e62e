// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"devvy-server/internal/model"
)

// SessionRepository 会话数据访问层
// 负责会话相关的所有数据库操作
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建 SessionRepository 实例
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库实例
// 一轮对话的多次写入需要在同一个事务中完成
// 参数:
//   - tx: GORM 事务对象
//
// 返回:
//   - *SessionRepository: 绑定事务的新实例，原实例不受影响
func (r *SessionRepository) WithTx(tx *gorm.DB) *SessionRepository {
	return &SessionRepository{db: tx}
}

// Create 创建新会话
// 参数:
//   - ctx: 上下文
//   - session: 会话对象，SessionID 由调用方生成
//
// 返回:
//   - error: 数据库错误
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByID 根据 ID 获取会话
// 参数:
//   - ctx: 上下文
//   - sessionID: 会话ID
//
// 返回:
//   - *model.Session: 会话对象，未找到返回 nil
//   - error: 数据库错误
func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserID 获取用户的所有会话
// 按最后消息时间倒序排列，最近活跃的会话在前
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Session: 会话列表
//   - error: 数据库错误
func (r *SessionRepository) GetByUserID(ctx context.Context, userID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_message_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// RecordTurn 记录一轮完成的对话
// message_count 加 2（一条用户消息 + 一条 AI 回复），last_message_at 更新为当前时间
// 使用单条 UPDATE 语句和 SQL 表达式完成自增
// 同一会话的并发请求由数据库保证不丢失更新
// 参数:
//   - ctx: 上下文
//   - sessionID: 会话ID
//
// 返回:
//   - error: 数据库错误
func (r *SessionRepository) RecordTurn(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"message_count":   gorm.Expr("message_count + ?", 2),
			"last_message_at": time.Now(),
		}).Error
}

// CountByUserID 统计用户的会话数量
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 会话数量
//   - error: 数据库错误
func (r *SessionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
