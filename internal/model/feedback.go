// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Feedback 用户反馈模型
// 对应数据库表 chat_feedback
// 只追加，核心逻辑不提供修改和删除
// 反馈不强制关联某个会话，仅按用户和评分记录
type Feedback struct {
	// ID 反馈唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 提交反馈的用户
	UserID string `gorm:"size:50;index;not null" json:"userId"`

	// Rating 评分，取值范围 1-5
	// 持久化之前在业务层校验
	Rating int `gorm:"not null" json:"rating"`

	// FeedbackCategory 反馈分类，可选
	FeedbackCategory *string `gorm:"size:50" json:"feedbackCategory,omitempty"`

	// Comment 反馈内容，可选，最长 1000 字符
	Comment *string `gorm:"size:1000" json:"comment,omitempty"`

	// CreatedAt 反馈提交时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "chat_feedback"
}
