// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Session 会话模型
// 对应数据库表 chat_sessions
// 表示用户在某个分类下与 AI 的一次对话会话
// 会话在用户首次发送消息（不带 sessionId）时创建
// 核心逻辑不删除会话，过期清理由外部批处理负责
type Session struct {
	// SessionID 会话唯一标识
	// 32 字符的随机字符串（UUID v4 去掉连字符），由服务端生成
	SessionID string `gorm:"size:32;primaryKey" json:"sessionId"`

	// UserID 会话所属用户
	UserID string `gorm:"size:50;index;not null" json:"userId"`

	// CategoryCode 会话所属分类
	// 创建后不再变更，一个会话的生命周期只属于一个分类
	CategoryCode string `gorm:"size:50;not null" json:"categoryCode"`

	// FirstMessage 会话的第一条用户消息
	// 用于历史列表展示，超长时按字符截断
	FirstMessage string `gorm:"size:500" json:"firstMessage"`

	// MessageCount 会话内已持久化的消息数量
	// 每完成一轮对话（用户 + AI）增加 2，增量维护而不是重新统计
	MessageCount int `gorm:"default:0" json:"messageCount"`

	// CreatedAt 会话创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// LastMessageAt 最后一条消息的时间
	// 每完成一轮对话时更新，历史列表按此倒序排列
	LastMessageAt time.Time `gorm:"index" json:"lastMessageAt"`

	// Messages 会话中的所有消息（一对多关系）
	Messages []Message `gorm:"foreignKey:SessionID" json:"messages,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "chat_sessions"
}
