// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"devvy-server/internal/model"
)

// FeedbackRepository 反馈数据访问层
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建 FeedbackRepository 实例
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create 创建新反馈
// 参数:
//   - ctx: 上下文
//   - feedback: 反馈对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// CountByUserID 统计用户提交的反馈数量
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 反馈数量
//   - error: 数据库错误
func (r *FeedbackRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
