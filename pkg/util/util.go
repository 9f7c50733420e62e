// Package util 提供通用工具函数
package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionID 生成会话 ID
// 使用 Google 的 uuid 库生成 UUID v4，去掉连字符后是 32 个十六进制字符
// 128 位随机数，碰撞概率可以忽略
// 返回:
//   - string: 32 字符的会话 ID
func GenerateSessionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// TruncateRunes 按字符数截断字符串
// 按 Unicode 字符（rune）截断而不是按字节，避免把多字节字符截成乱码
// 参数:
//   - s: 原字符串
//   - maxRunes: 最大字符数
//
// 返回:
//   - string: 截断后的字符串
func TruncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
func StringPtr(s string) *string {
	return &s
}
