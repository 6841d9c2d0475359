/*
 * @Description: 各内容板块的仓储构造函数
 * @Author: 安知鱼
 * @Date: 2026-10-19 11:52:37
 * @LastEditTime: 2026-10-19 11:52:37
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// 按 sort_order 排序的板块使用
var bySortOrder = []string{sql.Asc("sort_order"), sql.Asc("id")}

func NewAboutRepo(drv dialect.Driver) repository.ContentRepository[model.About] {
	return newCrudRepo[model.About](drv, "about")
}

func NewContactRepo(drv dialect.Driver) repository.ContentRepository[model.Contact] {
	return newCrudRepo[model.Contact](drv, "contact")
}

func NewHomeRepo(drv dialect.Driver) repository.ContentRepository[model.Home] {
	return newCrudRepo[model.Home](drv, "home")
}

func NewServiceRepo(drv dialect.Driver) repository.ContentRepository[model.Service] {
	return newCrudRepo[model.Service](drv, "service", bySortOrder...)
}

func NewServiceProvidedRepo(drv dialect.Driver) repository.ContentRepository[model.ServiceProvided] {
	return newCrudRepo[model.ServiceProvided](drv, "service_provided", bySortOrder...)
}

func NewSeparateServiceRepo(drv dialect.Driver) repository.ContentRepository[model.SeparateService] {
	return newCrudRepo[model.SeparateService](drv, "seperate_service")
}

func NewTeamRepo(drv dialect.Driver) repository.ContentRepository[model.TeamMember] {
	return newCrudRepo[model.TeamMember](drv, "teams", bySortOrder...)
}

func NewReviewRepo(drv dialect.Driver) repository.ContentRepository[model.Review] {
	return newCrudRepo[model.Review](drv, "about_review", sql.Desc("id"))
}

func NewFooterLinkRepo(drv dialect.Driver) repository.ContentRepository[model.FooterLink] {
	return newCrudRepo[model.FooterLink](drv, "footer_links", sql.Asc("group_name"), sql.Asc("sort_order"), sql.Asc("id"))
}

// --- 博客 ---

type blogRepo struct {
	*crudRepo[model.Blog, *model.Blog]
}

// NewBlogRepo 博客按 ID 倒序，最新的在前
func NewBlogRepo(drv dialect.Driver) repository.BlogRepository {
	return &blogRepo{crudRepo: newCrudRepo[model.Blog](drv, "blog", sql.Desc("id"))}
}

func (r *blogRepo) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

// --- 国家 / 地址 ---

type countryRepo struct {
	*crudRepo[model.Country, *model.Country]
}

func NewCountryRepo(drv dialect.Driver) repository.CountryRepository {
	return &countryRepo{crudRepo: newCrudRepo[model.Country](drv, "country", sql.Asc("name"))}
}

func (r *countryRepo) CodeExists(ctx context.Context, code string, excludeID uint) (bool, error) {
	return r.exists(ctx, "code", code, excludeID)
}

func (r *countryRepo) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	return r.exists(ctx, "name", name, excludeID)
}

type addressRepo struct {
	*crudRepo[model.Address, *model.Address]
}

func NewAddressRepo(drv dialect.Driver) repository.AddressRepository {
	return &addressRepo{crudRepo: newCrudRepo[model.Address](drv, "address")}
}

func (r *addressRepo) CountByCountryID(ctx context.Context, countryID uint) (int64, error) {
	return r.count(ctx, sql.EQ("country_id", countryID))
}
