/*
 * @Description: 时区工具，后台页面统一按 UTC+8 展示时间
 * @Author: 安知鱼
 * @Date: 2026-01-15 10:00:00
 * @LastEditTime: 2026-10-19 12:08:40
 * @LastEditors: 安知鱼
 */
package utils

import "time"

// ChinaTimezone 中国标准时间 UTC+8
var ChinaTimezone = time.FixedZone("CST", 8*60*60)

// DisplayLayout 后台列表中的时间格式
const DisplayLayout = "2006-01-02 15:04"

// FormatInChina 把时间转换为 UTC+8 并格式化，零值返回空字符串
func FormatInChina(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(ChinaTimezone).Format(DisplayLayout)
}

