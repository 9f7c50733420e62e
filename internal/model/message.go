// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// MessageType 消息类型常量
const (
	MessageTypeUser = "USER" // 用户提问
	MessageTypeAI   = "AI"   // AI 回复
)

// Message 消息模型
// 对应数据库表 chat_messages
// 只追加不修改，按创建时间排序
// 一轮对话总是成对写入：一条 USER 消息加一条 AI 消息
type Message struct {
	// ID 消息唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// SessionID 所属会话ID，外键关联 chat_sessions.session_id
	SessionID string `gorm:"size:32;index;not null" json:"sessionId"`

	// UserID 消息所属用户
	// 与所属会话的 UserID 保持一致
	UserID string `gorm:"size:50;not null" json:"userId"`

	// CategoryCode 消息所属分类
	CategoryCode string `gorm:"size:50;not null" json:"categoryCode"`

	// MessageType 消息类型
	// USER: 用户提问
	// AI: AI 回复
	MessageType string `gorm:"size:10;not null" json:"messageType"`

	// Content 消息内容
	// 使用 TEXT 类型存储，可以存储较长的内容
	Content string `gorm:"type:text;not null" json:"content"`

	// CreatedAt 消息创建时间
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "chat_messages"
}
