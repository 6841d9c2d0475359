/*
 * @Description: 文件上传相关的领域模型
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 10:57:40
 * @LastEditors: 安知鱼
 */
package model

// Upload 记录了一次写入对象存储的文件
type Upload struct {
	Base
	Section    string `json:"section" db:"section"`
	ObjectKey  string `json:"key" db:"object_key"`
	URL        string `json:"url" db:"url"`
	FileName   string `json:"file_name" db:"file_name"`
	Size       int64  `json:"size" db:"size"`
	MimeType   string `json:"mime_type" db:"mime_type"`
	Dimension  string `json:"dimension" db:"dimension"` // 例如 "1920x1080"，非图片为空
	MainColor  string `json:"main_color" db:"main_color"`
	Camera     string `json:"camera" db:"camera"`     // 来自 EXIF
	TakenAt    string `json:"taken_at" db:"taken_at"` // 来自 EXIF，RFC3339
	PolicyType string `json:"policy_type" db:"policy_type"`
}
