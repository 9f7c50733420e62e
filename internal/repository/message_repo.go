// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"devvy-server/internal/model"
)

// MessageRepository 消息数据访问层
// 负责消息相关的所有数据库操作
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库实例
// 参数:
//   - tx: GORM 事务对象
//
// 返回:
//   - *MessageRepository: 绑定事务的新实例
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetBySessionID 获取会话的所有消息
// 按创建时间正序排列（最早的在前），时间相同时按自增 ID 排序
// 保证同一轮对话中 USER 消息排在 AI 消息之前
// 参数:
//   - ctx: 上下文
//   - sessionID: 会话ID
//
// 返回:
//   - []model.Message: 消息列表
//   - error: 数据库错误
func (r *MessageRepository) GetBySessionID(ctx context.Context, sessionID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// CountBySessionID 统计会话的消息数量
// 参数:
//   - ctx: 上下文
//   - sessionID: 会话ID
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) CountBySessionID(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
