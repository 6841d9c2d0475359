/*
 * @Description: 存储策略模型
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 10:58:16
 * @LastEditors: 安知鱼
 */
package model

import "github.com/anzhiyu-c/anheyu-cms/pkg/constant"

// StoragePolicy 描述了当前使用的对象存储，来自配置文件的 [Storage] 段
type StoragePolicy struct {
	Type       constant.StoragePolicyType `json:"type"`
	Server     string                     `json:"server"`      // endpoint 或地域，各云厂商含义不同
	BucketName string                     `json:"bucket_name"` // 本地存储时为根目录
	IsPrivate  bool                       `json:"is_private"`
	AccessKey  string                     `json:"-"`
	SecretKey  string                     `json:"-"`
	BasePath   string                     `json:"base_path"` // 对象键前缀
	BaseURL    string                     `json:"base_url"`  // 公开访问域名，留空时按各厂商默认规则拼接
}
