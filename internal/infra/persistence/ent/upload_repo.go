package ent

import (
	"context"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

type uploadRepo struct {
	*crudRepo[model.Upload, *model.Upload]
}

// NewUploadRepo 上传记录按时间倒序
func NewUploadRepo(drv dialect.Driver) repository.UploadRepository {
	return &uploadRepo{crudRepo: newCrudRepo[model.Upload](drv, "uploads", sql.Desc("id"))}
}

func (r *uploadRepo) FindCreatedBefore(ctx context.Context, before time.Time, afterID uint, limit int) ([]*model.Upload, error) {
	selector := r.selectAll().
		Where(sql.And(
			sql.LT("created_at", before.UTC()),
			sql.GT("id", afterID),
		)).
		OrderBy(sql.Asc("id"))
	if limit > 0 {
		selector.Limit(limit)
	}
	return r.query(ctx, selector)
}
