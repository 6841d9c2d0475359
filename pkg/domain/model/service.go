/*
 * @Description: 服务相关的三个板块
 * @Author: 安知鱼
 * @Date: 2026-10-19 10:48:33
 * @LastEditTime: 2026-10-19 10:48:33
 * @LastEditors: 安知鱼
 */
package model

// Service 对应 service 表，服务概览条目
type Service struct {
	Base
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	IconURL     string `json:"icon_url" db:"icon_url"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}

// ServiceProvided 对应 service_provided 表，已提供的服务案例
type ServiceProvided struct {
	Base
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"image_url" db:"image_url"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}

// SeparateService 对应 seperate_service 表，单独展示的服务详情页
type SeparateService struct {
	Base
	Title    string  `json:"title" db:"title"`
	Summary  string  `json:"summary" db:"summary"`
	Content  string  `json:"content" db:"content"` // 富文本 HTML
	ImageURL string  `json:"image_url" db:"image_url"`
	Price    float64 `json:"price" db:"price"`
}
