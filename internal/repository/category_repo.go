// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devvy-server/internal/model"
)

// CategoryRepository 分类数据访问层
// 负责分类相关的所有数据库操作
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive 获取所有启用的分类
// 按 sort_order 升序排列，相同权重按 code 排序
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - []model.Category: 分类列表
//   - error: 数据库错误
func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, code ASC").
		Find(&categories).Error
	return categories, err
}

// GetByCode 根据分类代码获取启用的分类
// 参数:
//   - ctx: 上下文
//   - code: 分类代码
//
// 返回:
//   - *model.Category: 分类对象，未找到或已停用返回 nil
//   - error: 数据库错误
func (r *CategoryRepository) GetByCode(ctx context.Context, code string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ExistsByCode 检查启用的分类是否存在
// 用于校验时避免加载整条记录
// 参数:
//   - ctx: 上下文
//   - code: 分类代码
//
// 返回:
//   - bool: 是否存在
//   - error: 数据库错误
func (r *CategoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("code = ? AND is_active = ?", code, true).
		Count(&count).Error
	return count > 0, err
}

// UpdateSystemPrompt 更新分类的系统提示词
// 参数:
//   - ctx: 上下文
//   - code: 分类代码
//   - prompt: 提示词内容
//
// 返回:
//   - int64: 受影响的行数，0 表示分类不存在
//   - error: 数据库错误
func (r *CategoryRepository) UpdateSystemPrompt(ctx context.Context, code, prompt string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("code = ? AND is_active = ?", code, true).
		Update("system_prompt", prompt)
	return result.RowsAffected, result.Error
}

// Seed 写入种子分类数据
// 已存在的分类（按 code 判断）不会被覆盖，保留线上修改过的提示词
// 参数:
//   - ctx: 上下文
//   - categories: 种子数据
//
// 返回:
//   - error: 数据库错误
func (r *CategoryRepository) Seed(ctx context.Context, categories []model.Category) error {
	for i := range categories {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&model.Category{}).
			Where("code = ?", categories[i].Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := r.db.WithContext(ctx).Create(&categories[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
