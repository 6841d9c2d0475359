/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-21 19:42:38
 * @LastEditTime: 2026-10-19 11:30:12
 * @LastEditors: 安知鱼
 */
package repository

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageQuery 包含了所有列表查询都通用的分页参数。
type PageQuery struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

// Normalize 修正非法的分页参数
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset 返回 SQL OFFSET
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// PageResult 包含了所有分页查询返回的通用结构。
type PageResult[T any] struct {
	Items []*T  `json:"items"`
	Total int64 `json:"total"`
}
