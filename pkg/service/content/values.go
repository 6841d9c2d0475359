package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
)

// Record 是一条记录的通用表示，键为 json 字段名，供模板和非泛型代码使用
type Record map[string]any

// ID 返回记录主键，缺失时为 0
func (r Record) ID() uint {
	n, ok := r["id"].(json.Number)
	if !ok {
		return 0
	}
	id, _ := strconv.ParseUint(n.String(), 10, 64)
	return uint(id)
}

// String 以字符串形式返回字段值，nil 返回空字符串
func (r Record) String(name string) string {
	switch v := r[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Bool 返回布尔字段的值
func (r Record) Bool(name string) bool {
	v, _ := r[name].(bool)
	return v
}

// ToRecord 把类型化的记录转换为 Record
func ToRecord(rec any) (Record, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out Record
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeForm 按板块字段类型把表单值转换为 JSON，交给 Panel 解码成具体模型。
// 未出现在 values 中的字段保持零值。
func DecodeForm(section Section, values map[string]string) ([]byte, error) {
	out := make(map[string]any, len(section.Fields))
	for _, f := range section.Fields {
		raw, ok := values[f.Name]
		raw = strings.TrimSpace(raw)
		switch f.Kind {
		case KindBool:
			out[f.Name] = raw == "on" || raw == "true" || raw == "1"
		case KindNumber:
			if raw == "" {
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: 字段 %s 必须是整数", constant.ErrBadRequest, f.Label)
			}
			out[f.Name] = n
		case KindDecimal:
			if raw == "" {
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: 字段 %s 必须是数字", constant.ErrBadRequest, f.Label)
			}
			out[f.Name] = n
		case KindSelect:
			if raw == "" {
				continue
			}
			// 下拉框的值是外键时按数字传递
			if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
				out[f.Name] = n
			} else {
				out[f.Name] = raw
			}
		default:
			if ok {
				out[f.Name] = raw
			}
		}
	}
	return json.Marshal(out)
}

var fieldIndexCache sync.Map // reflect.Type -> map[string][]int

// fieldIndex 返回 json 字段名到结构体字段下标的映射，包含嵌入的 Base
func fieldIndex(t reflect.Type) map[string][]int {
	if cached, ok := fieldIndexCache.Load(t); ok {
		return cached.(map[string][]int)
	}
	m := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		m[name] = f.Index
	}
	fieldIndexCache.Store(t, m)
	return m
}

func fieldByName(rec any, name string) (reflect.Value, bool) {
	v := reflect.Indirect(reflect.ValueOf(rec))
	idx, ok := fieldIndex(v.Type())[name]
	if !ok {
		return reflect.Value{}, false
	}
	return v.FieldByIndex(idx), true
}

// fieldString 返回字符串字段的值，字段不存在或不是字符串时返回空
func fieldString(rec any, name string) string {
	fv, ok := fieldByName(rec, name)
	if !ok || fv.Kind() != reflect.String {
		return ""
	}
	return fv.String()
}

func isBlank(v reflect.Value) bool {
	if v.Kind() == reflect.String {
		return strings.TrimSpace(v.String()) == ""
	}
	return v.IsZero()
}

// trimStrings 去除所有字符串字段首尾空白
func trimStrings(rec any) {
	v := reflect.Indirect(reflect.ValueOf(rec))
	for _, idx := range fieldIndex(v.Type()) {
		fv := v.FieldByIndex(idx)
		if fv.Kind() == reflect.String && fv.CanSet() {
			fv.SetString(strings.TrimSpace(fv.String()))
		}
	}
}

// validateFields 检查必填字段和邮箱格式
func validateFields(section Section, rec any) error {
	for _, f := range section.Fields {
		fv, ok := fieldByName(rec, f.Name)
		if !ok {
			continue
		}
		if isBlank(fv) {
			if f.Required {
				return fmt.Errorf("%w: 字段 %s 不能为空", constant.ErrBadRequest, f.Label)
			}
			continue
		}
		if f.Kind == KindEmail && fv.Kind() == reflect.String {
			if _, err := mail.ParseAddress(fv.String()); err != nil {
				return fmt.Errorf("%w: 字段 %s 不是有效的邮箱地址", constant.ErrBadRequest, f.Label)
			}
		}
	}
	return nil
}
