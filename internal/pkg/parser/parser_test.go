package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "移除脚本",
			input:       `<p>hi</p><script>alert(1)</script>`,
			contains:    []string{"<p>hi</p>"},
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "移除事件属性",
			input:       `<img src="/a.png" onerror="alert(1)">`,
			contains:    []string{`src="/a.png"`},
			notContains: []string{"onerror"},
		},
		{
			name:     "保留代码块的 class",
			input:    `<pre><code class="language-go">x := 1</code></pre>`,
			contains: []string{`class="language-go"`},
		},
		{
			name:     "保留表格",
			input:    `<table><tr><td>1</td></tr></table>`,
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SanitizeHTML(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "去标签并折叠空白", input: "<p>Hello</p>\n\n<p>World</p>", max: 50, expected: "Hello World"},
		{name: "解码实体", input: "<p>A &amp; B</p>", max: 50, expected: "A & B"},
		{name: "超长截断", input: "<p>你好世界</p>", max: 2, expected: "你好..."},
		{name: "空内容", input: "", max: 10, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Excerpt(tt.input, tt.max))
		})
	}
}

func TestMarkdownToHTML(t *testing.T) {
	t.Run("空内容", func(t *testing.T) {
		out, err := MarkdownToHTML("")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("标题和图片", func(t *testing.T) {
		out, err := MarkdownToHTML("# 标题\n\n![封面](/uploads/a.png)")
		require.NoError(t, err)
		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, `src="/uploads/a.png"`)
	})

	t.Run("内嵌脚本被清理", func(t *testing.T) {
		out, err := MarkdownToHTML("text\n\n<script>alert(1)</script>")
		require.NoError(t, err)
		assert.False(t, strings.Contains(out, "<script"))
	})
}

func TestLinkedURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "纯文本", input: "no tags here", expected: nil},
		{
			name:     "图片和链接",
			input:    `<p><img src="/uploads/a.png"><a href="https://example.com">x</a></p>`,
			expected: []string{"/uploads/a.png", "https://example.com"},
		},
		{
			name:     "视频封面",
			input:    `<video poster="/uploads/p.jpg" src="/uploads/v.mp4"></video>`,
			expected: []string{"/uploads/p.jpg", "/uploads/v.mp4"},
		},
		{
			name:     "跳过锚点和空值",
			input:    `<a href="#top">top</a><img src="">`,
			expected: nil,
		},
		{
			name:     "解码属性中的实体",
			input:    `<img src="/uploads/a.png?w=1&amp;h=2"/>`,
			expected: []string{"/uploads/a.png?w=1&h=2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LinkedURLs(tt.input))
		})
	}
}
