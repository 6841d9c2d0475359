/*
 * @Description: 富文本清理与纯文本提取
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:36
 * @LastEditTime: 2026-10-19 12:04:51
 * @LastEditors: 安知鱼
 */
package parser

import (
	"html"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/strutil"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripTagsPolicy = bluemonday.StripTagsPolicy()
	richTextPolicy  = newRichTextPolicy()
)

func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "pre", "div", "p")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
	return p
}

// SanitizeHTML 清理后台提交的富文本，只保留安全的标签和属性
func SanitizeHTML(htmlContent string) string {
	return richTextPolicy.Sanitize(htmlContent)
}

// StripHTML 去除所有标签，返回纯文本
func StripHTML(htmlContent string) string {
	return stripTagsPolicy.Sanitize(htmlContent)
}

// Excerpt 从 HTML 中提取长度不超过 maxRunes 的摘要，连续空白折叠为一个空格
func Excerpt(htmlContent string, maxRunes int) string {
	text := html.UnescapeString(StripHTML(htmlContent))
	text = strings.Join(strings.Fields(text), " ")
	return strutil.Truncate(text, maxRunes)
}
