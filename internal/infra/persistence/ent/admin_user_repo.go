package ent

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

type adminUserRepo struct {
	*crudRepo[model.AdminUser, *model.AdminUser]
}

func NewAdminUserRepo(drv dialect.Driver) repository.AdminUserRepository {
	return &adminUserRepo{crudRepo: newCrudRepo[model.AdminUser](drv, "admin_users")}
}

func (r *adminUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return r.findOne(ctx, sql.EQ("username", username))
}
