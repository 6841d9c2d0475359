package model

// FooterLink 对应 footer_links 表
type FooterLink struct {
	Base
	Label     string `json:"label" db:"label"`
	URL       string `json:"url" db:"url"`
	GroupName string `json:"group_name" db:"group_name"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}
