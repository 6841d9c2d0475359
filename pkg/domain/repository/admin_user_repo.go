package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// AdminUserRepository 管理员账号仓储
type AdminUserRepository interface {
	BaseRepository[model.AdminUser]
	// FindByUsername 未找到时返回 constant.ErrNotFound
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}
