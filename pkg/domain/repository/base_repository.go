package repository

import (
	"context"
)

// BaseRepository 定义了所有仓储层都应具备的最基础的CRUD操作。
type BaseRepository[T any] interface {
	// FindByID 根据主键ID查找实体，不存在时返回 constant.ErrNotFound。
	FindByID(ctx context.Context, id uint) (*T, error)

	// Create 创建一个新的实体，成功后回填 ID 和时间戳。
	Create(ctx context.Context, entity *T) error

	// Update 更新一个已存在的实体。
	Update(ctx context.Context, entity *T) error

	// Delete 根据主键ID删除一个实体。
	Delete(ctx context.Context, id uint) error
}

// ContentRepository 是每个内容板块共用的仓储接口
type ContentRepository[T any] interface {
	BaseRepository[T]

	// FindAll 按板块的默认排序返回全部记录
	FindAll(ctx context.Context) ([]*T, error)

	// FindListByPage 分页查询
	FindListByPage(ctx context.Context, query PageQuery) (*PageResult[T], error)

	// Count 返回记录总数
	Count(ctx context.Context) (int64, error)
}
