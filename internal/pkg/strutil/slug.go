package strutil

import (
	"strings"
	"unicode"
)

// Slugify 把标题转换成 URL 友好的 slug。
// 字母和数字保留（包括中文等非 ASCII 字母），其它字符折叠为单个 "-"。
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
