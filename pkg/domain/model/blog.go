package model

import "time"

// Blog 对应 blog 表，一篇博客文章
type Blog struct {
	Base
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Author        string     `json:"author" db:"author"`
	Excerpt       string     `json:"excerpt" db:"excerpt"`
	Content       string     `json:"content" db:"content"`           // Markdown 原文
	ContentHTML   string     `json:"content_html" db:"content_html"` // 由 Content 渲染，只读
	CoverImageURL string     `json:"cover_image_url" db:"cover_image_url"`
	IsPublished   bool       `json:"is_published" db:"is_published"`
	PublishedAt   *time.Time `json:"published_at" db:"published_at"`
}
