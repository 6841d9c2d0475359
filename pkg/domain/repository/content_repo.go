package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
)

// BlogRepository 在通用内容仓储之上增加了 slug 查询
type BlogRepository interface {
	ContentRepository[model.Blog]
	// SlugExists 判断 slug 是否被除 excludeID 以外的文章占用
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// CountryRepository 在通用内容仓储之上增加了唯一性检查
type CountryRepository interface {
	ContentRepository[model.Country]
	CodeExists(ctx context.Context, code string, excludeID uint) (bool, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
}

// AddressRepository 地址仓储
type AddressRepository interface {
	ContentRepository[model.Address]
	CountByCountryID(ctx context.Context, countryID uint) (int64, error)
}
