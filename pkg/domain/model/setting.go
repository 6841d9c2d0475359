/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-20 13:01:45
 * @LastEditTime: 2026-10-19 10:55:02
 * @LastEditors: 安知鱼
 */
package model

// Setting 是站点运行时配置项
type Setting struct {
	Base
	ConfigKey string `json:"key" db:"config_key"`
	Value     string `json:"value" db:"value"`
	Comment   string `json:"comment" db:"comment"`
}
