package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// linkAttrs 会引用外部资源的属性
var linkAttrs = map[string]struct{}{
	"src":    {},
	"href":   {},
	"poster": {},
}

// LinkedURLs 返回 HTML 中 src/href/poster 属性的值，属性值中的实体已解码
func LinkedURLs(htmlContent string) []string {
	if !strings.Contains(htmlContent, "<") {
		return nil
	}

	var urls []string
	z := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF 或解析错误都结束扫描
			return urls
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if _, ok := linkAttrs[string(key)]; !ok {
					continue
				}
				if v := strings.TrimSpace(string(val)); v != "" && !strings.HasPrefix(v, "#") {
					urls = append(urls, v)
				}
			}
		}
	}
}
