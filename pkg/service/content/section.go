/*
 * @Description: 内容板块描述，后台表单和公开接口共用
 * @Author: 安知鱼
 * @Date: 2026-10-19 12:44:02
 * @LastEditTime: 2026-10-19 12:44:02
 * @LastEditors: 安知鱼
 */
package content

import (
	"context"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
)

// FieldKind 决定表单控件类型以及表单值如何转换
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindRichText FieldKind = "richtext"
	KindMarkdown FieldKind = "markdown"
	KindImage    FieldKind = "image"
	KindURL      FieldKind = "url"
	KindEmail    FieldKind = "email"
	KindNumber   FieldKind = "number"  // 整数
	KindDecimal  FieldKind = "decimal" // 小数
	KindBool     FieldKind = "bool"
	KindSelect   FieldKind = "select"
)

// Option 是下拉框的一个选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsFunc 动态加载下拉框选项
type OptionsFunc func(ctx context.Context) ([]Option, error)

// Field 描述记录中的一个可编辑字段，Name 与模型的 json 标签一致
type Field struct {
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	Kind     FieldKind   `json:"kind"`
	Required bool        `json:"required"`
	Help     string      `json:"help,omitempty"`
	Options  OptionsFunc `json:"-"`
}

// Section 描述一个内容板块
type Section struct {
	Key    constant.SectionKey `json:"key"`
	Title  string              `json:"title"`
	Table  string              `json:"table"`
	Fields []Field             `json:"fields"`
	// TitleField 在列表中作为每条记录的标题显示
	TitleField string `json:"title_field"`
}

// Field 按名称查找字段
func (s Section) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsOfKind 返回指定类型的全部字段
func (s Section) FieldsOfKind(kinds ...FieldKind) []Field {
	var out []Field
	for _, f := range s.Fields {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
