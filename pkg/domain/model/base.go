/*
 * @Description: 内容记录的公共字段
 * @Author: 安知鱼
 * @Date: 2026-10-19 10:42:10
 * @LastEditTime: 2026-10-19 10:42:10
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Base 是所有表共有的字段，嵌入到各个领域模型中。
// db 标签给出数据库列名，仓储层据此生成 SQL。
type Base struct {
	ID        uint      `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// GetBase 返回公共字段的指针，方便泛型代码读写 ID 和时间戳
func (b *Base) GetBase() *Base {
	return b
}

// Entity 约束了一个指向领域模型的指针类型，该模型必须嵌入 Base。
type Entity[T any] interface {
	*T
	GetBase() *Base
}
