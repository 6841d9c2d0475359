/*
 * @Description: 基于 Ent SQL 构建器的通用仓储实现
 * @Author: 安知鱼
 * @Date: 2026-10-19 11:44:03
 * @LastEditTime: 2026-10-19 11:44:03
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// crudRepo 实现了 repository.ContentRepository[T]，各板块仓储通过嵌入它获得增删改查能力
type crudRepo[T any, PT model.Entity[T]] struct {
	drv     dialect.Driver
	table   string
	meta    *tableMeta
	orderBy []string
}

func newCrudRepo[T any, PT model.Entity[T]](drv dialect.Driver, table string, orderBy ...string) *crudRepo[T, PT] {
	if len(orderBy) == 0 {
		orderBy = []string{sql.Asc("id")}
	}
	return &crudRepo[T, PT]{
		drv:     drv,
		table:   table,
		meta:    metaOf(reflect.TypeOf((*T)(nil)).Elem()),
		orderBy: orderBy,
	}
}

func (r *crudRepo[T, PT]) builder() *sql.DialectBuilder {
	return sql.Dialect(r.drv.Dialect())
}

func (r *crudRepo[T, PT]) selectAll() *sql.Selector {
	b := r.builder()
	return b.Select(r.meta.columns...).From(b.Table(r.table))
}

// now 统一使用 UTC 并截断到微秒，保证各数据库读回的值一致
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// query 执行查询并将结果扫描为模型列表
func (r *crudRepo[T, PT]) query(ctx context.Context, selector *sql.Selector) ([]*T, error) {
	query, args := selector.Query()
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("查询 %s 失败: %w", r.table, err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item := new(T)
		if err := rows.Scan(r.meta.scanDest(item)...); err != nil {
			return nil, fmt.Errorf("扫描 %s 记录失败: %w", r.table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// count 执行 COUNT(*)，where 为 nil 时统计全表
func (r *crudRepo[T, PT]) count(ctx context.Context, where *sql.Predicate) (int64, error) {
	b := r.builder()
	selector := b.Select().Count().From(b.Table(r.table))
	if where != nil {
		selector.Where(where)
	}
	query, args := selector.Query()
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("统计 %s 失败: %w", r.table, err)
	}
	defer rows.Close()
	return sql.ScanInt64(rows)
}

// exists 判断某列等于 value 的记录是否存在，excludeID 非 0 时排除该记录自身
func (r *crudRepo[T, PT]) exists(ctx context.Context, column string, value any, excludeID uint) (bool, error) {
	pred := sql.EQ(column, value)
	if excludeID != 0 {
		pred = sql.And(pred, sql.NEQ("id", excludeID))
	}
	n, err := r.count(ctx, pred)
	return n > 0, err
}

// findOne 返回满足条件的第一条记录，不存在时返回 constant.ErrNotFound
func (r *crudRepo[T, PT]) findOne(ctx context.Context, where *sql.Predicate) (*T, error) {
	items, err := r.query(ctx, r.selectAll().Where(where).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, constant.ErrNotFound
	}
	return items[0], nil
}

func (r *crudRepo[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	return r.findOne(ctx, sql.EQ("id", id))
}

func (r *crudRepo[T, PT]) FindAll(ctx context.Context) ([]*T, error) {
	return r.query(ctx, r.selectAll().OrderBy(r.orderBy...))
}

func (r *crudRepo[T, PT]) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

func (r *crudRepo[T, PT]) FindListByPage(ctx context.Context, q repository.PageQuery) (*repository.PageResult[T], error) {
	q = q.Normalize()
	total, err := r.count(ctx, nil)
	if err != nil {
		return nil, err
	}
	items, err := r.query(ctx, r.selectAll().
		OrderBy(r.orderBy...).
		Limit(q.PageSize).
		Offset(q.Offset()))
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

// Create 插入记录并回填 ID 和时间戳
func (r *crudRepo[T, PT]) Create(ctx context.Context, entity *T) error {
	base := PT(entity).GetBase()
	ts := now()
	base.CreatedAt, base.UpdatedAt = ts, ts

	cols, vals := r.meta.values(entity, "id")
	insert := r.builder().Insert(r.table).Columns(cols...).Values(vals...)

	// MySQL 不支持 RETURNING，使用 LastInsertId
	if r.drv.Dialect() == dialect.MySQL {
		query, args := insert.Query()
		var res sql.Result
		if err := r.drv.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("创建 %s 记录失败: %w", r.table, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("获取 %s 新记录ID失败: %w", r.table, err)
		}
		base.ID = uint(id)
		return nil
	}

	query, args := insert.Returning("id").Query()
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("创建 %s 记录失败: %w", r.table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("创建 %s 记录失败: %w", r.table, err)
		}
		return fmt.Errorf("创建 %s 记录失败: 未返回ID", r.table)
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return fmt.Errorf("读取 %s 新记录ID失败: %w", r.table, err)
	}
	base.ID = uint(id)
	return nil
}

// Update 按 ID 覆盖除 created_at 以外的全部列
func (r *crudRepo[T, PT]) Update(ctx context.Context, entity *T) error {
	base := PT(entity).GetBase()
	if base.ID == 0 {
		return fmt.Errorf("%w: 更新 %s 时缺少ID", constant.ErrBadRequest, r.table)
	}
	base.UpdatedAt = now()

	cols, vals := r.meta.values(entity, "id", "created_at")
	update := r.builder().Update(r.table)
	for i, col := range cols {
		update.Set(col, vals[i])
	}
	query, args := update.Where(sql.EQ("id", base.ID)).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("更新 %s 记录失败: %w", r.table, err)
	}
	return nil
}

func (r *crudRepo[T, PT]) Delete(ctx context.Context, id uint) error {
	query, args := r.builder().Delete(r.table).Where(sql.EQ("id", id)).Query()
	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("删除 %s 记录失败: %w", r.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return constant.ErrNotFound
	}
	return nil
}
