// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Category 聊天分类模型
// 对应数据库表 chat_categories
// 分类是只读的基础数据，决定 AI 回复策略和系统提示词
// 启动时通过 AutoMigrate 创建，并由种子数据填充
type Category struct {
	// ID 分类唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"categoryId"`

	// Code 分类代码，业务层使用的稳定标识符
	// 如 "project"、"voc"，全局唯一
	Code string `gorm:"size:50;uniqueIndex;not null" json:"categoryCode"`

	// Name 分类的显示名称
	Name string `gorm:"size:100;not null" json:"categoryName"`

	// Description 分类说明，用于前端展示
	Description string `gorm:"size:255" json:"description"`

	// Icon 分类图标，可选
	Icon *string `gorm:"size:100" json:"icon,omitempty"`

	// SortOrder 排序权重，列表按此升序排列
	SortOrder int `gorm:"default:0" json:"sortOrder"`

	// SystemPrompt 该分类的系统提示词，可选
	// 为空时使用内置的默认提示词
	SystemPrompt *string `gorm:"type:text" json:"systemPrompt,omitempty"`

	// IsActive 是否启用
	// 停用的分类对核心逻辑不可见
	IsActive bool `gorm:"default:true;index" json:"isActive"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "chat_categories"
}
