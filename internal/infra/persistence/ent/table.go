/*
 * @Description: 根据领域模型的 db 标签生成列映射
 * @Author: 安知鱼
 * @Date: 2026-10-19 11:40:26
 * @LastEditTime: 2026-10-19 11:40:26
 * @LastEditors: 安知鱼
 */
package ent

import (
	"reflect"
	"sync"
)

// tableMeta 保存一个模型类型的列名和对应的字段下标
type tableMeta struct {
	columns []string
	index   [][]int
}

var metaCache sync.Map // map[reflect.Type]*tableMeta

// metaOf 返回模型类型 t 的列映射，结果会被缓存
func metaOf(t reflect.Type) *tableMeta {
	if m, ok := metaCache.Load(t); ok {
		return m.(*tableMeta)
	}
	meta := &tableMeta{}
	collectColumns(t, nil, meta)
	actual, _ := metaCache.LoadOrStore(t, meta)
	return actual.(*tableMeta)
}

// collectColumns 递归展开嵌入的结构体 (例如 model.Base)
func collectColumns(t reflect.Type, prefix []int, meta *tableMeta) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectColumns(f.Type, idx, meta)
			continue
		}
		name := f.Tag.Get("db")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		meta.columns = append(meta.columns, name)
		meta.index = append(meta.index, idx)
	}
}

// scanDest 返回 rows.Scan 所需的字段指针，顺序与 columns 一致
func (m *tableMeta) scanDest(entity any) []any {
	v := reflect.ValueOf(entity).Elem()
	dest := make([]any, len(m.index))
	for i, idx := range m.index {
		dest[i] = v.FieldByIndex(idx).Addr().Interface()
	}
	return dest
}

// values 返回除 skip 以外所有列的列名和值
func (m *tableMeta) values(entity any, skip ...string) ([]string, []any) {
	v := reflect.ValueOf(entity).Elem()
	cols := make([]string, 0, len(m.columns))
	vals := make([]any, 0, len(m.columns))
	for i, col := range m.columns {
		if contains(skip, col) {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v.FieldByIndex(m.index[i]).Interface())
	}
	return cols, vals
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
