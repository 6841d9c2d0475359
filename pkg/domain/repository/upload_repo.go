package repository

import (
	"context"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// UploadRepository 上传记录仓储
type UploadRepository interface {
	BaseRepository[model.Upload]
	// FindCreatedBefore 按 ID 升序返回创建时间早于 before 且 ID 大于 afterID 的记录，用于分批清理孤儿文件
	FindCreatedBefore(ctx context.Context, before time.Time, afterID uint, limit int) ([]*model.Upload, error)
	FindListByPage(ctx context.Context, query PageQuery) (*PageResult[model.Upload], error)
}
