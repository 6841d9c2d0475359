/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:53
 * @LastEditTime: 2026-10-19 12:06:02
 * @LastEditors: 安知鱼
 */
package strutil

import "unicode/utf8"

// Ellipsis 截断后追加的省略号
const Ellipsis = "..."

// Truncate 按 rune 截断字符串，超出时追加省略号，maxLength <= 0 时原样返回
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + Ellipsis
}
