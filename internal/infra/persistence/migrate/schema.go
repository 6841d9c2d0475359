/*
 * @Description: 数据库表结构定义，供启动时自动迁移使用
 * @Author: 安知鱼
 * @Date: 2026-10-19 11:05:12
 * @LastEditTime: 2026-10-19 11:05:12
 * @LastEditors: 安知鱼
 */
package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// textSize 与 ent 中 field.Text 生成的列长度保持一致
const textSize = 2147483647

// baseColumns 返回每张表都有的 id / created_at / updated_at 三列
func baseColumns(extra ...*schema.Column) []*schema.Column {
	cols := []*schema.Column{
		&schema.Column{Name: "id", Type: field.TypeUint, Increment: true},
		&schema.Column{Name: "created_at", Type: field.TypeTime},
		&schema.Column{Name: "updated_at", Type: field.TypeTime},
	}
	return append(cols, extra...)
}

func str(name, comment string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: 255, Default: "", Comment: comment}
}

func text(name, comment string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: textSize, Default: "", Comment: comment}
}

func integer(name, comment string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0, Comment: comment}
}

var (
	// AboutColumns holds the columns for the "about" table.
	AboutColumns = baseColumns(
		str("title", "标题"),
		str("subtitle", "副标题"),
		text("description", "正文(富文本)"),
		text("mission", "使命"),
		text("vision", "愿景"),
		str("image_url", "配图URL"),
	)
	// AboutTable holds the schema information for the "about" table.
	AboutTable = &schema.Table{
		Name:       "about",
		Comment:    "关于我们",
		Columns:    AboutColumns,
		PrimaryKey: []*schema.Column{AboutColumns[0]},
	}

	// BlogColumns holds the columns for the "blog" table.
	BlogColumns = baseColumns(
		str("title", "标题"),
		&schema.Column{Name: "slug", Type: field.TypeString, Unique: true, Size: 255, Comment: "URL 别名"},
		str("author", "作者"),
		text("excerpt", "摘要"),
		text("content", "Markdown 原文"),
		text("content_html", "渲染后的 HTML"),
		str("cover_image_url", "封面图URL"),
		&schema.Column{Name: "is_published", Type: field.TypeBool, Default: false, Comment: "是否发布"},
		&schema.Column{Name: "published_at", Type: field.TypeTime, Nullable: true, Comment: "首次发布时间"},
	)
	// BlogTable holds the schema information for the "blog" table.
	BlogTable = &schema.Table{
		Name:       "blog",
		Comment:    "博客文章",
		Columns:    BlogColumns,
		PrimaryKey: []*schema.Column{BlogColumns[0]},
	}

	// ContactColumns holds the columns for the "contact" table.
	ContactColumns = baseColumns(
		str("email", "联系邮箱"),
		str("phone", "联系电话"),
		str("address_line", "地址"),
		text("map_url", "地图链接"),
		str("working_hours", "营业时间"),
	)
	// ContactTable holds the schema information for the "contact" table.
	ContactTable = &schema.Table{
		Name:       "contact",
		Comment:    "联系方式",
		Columns:    ContactColumns,
		PrimaryKey: []*schema.Column{ContactColumns[0]},
	}

	// HomeColumns holds the columns for the "home" table.
	HomeColumns = baseColumns(
		str("hero_title", "首屏标题"),
		text("hero_subtitle", "首屏副标题"),
		str("hero_image_url", "首屏背景图URL"),
		str("cta_text", "按钮文字"),
		str("cta_link", "按钮链接"),
	)
	// HomeTable holds the schema information for the "home" table.
	HomeTable = &schema.Table{
		Name:       "home",
		Comment:    "首页",
		Columns:    HomeColumns,
		PrimaryKey: []*schema.Column{HomeColumns[0]},
	}

	// ServiceColumns holds the columns for the "service" table.
	ServiceColumns = baseColumns(
		str("title", "服务名称"),
		text("description", "服务描述"),
		str("icon_url", "图标URL"),
		integer("sort_order", "排序，越小越靠前"),
	)
	// ServiceTable holds the schema information for the "service" table.
	ServiceTable = &schema.Table{
		Name:       "service",
		Comment:    "服务概览",
		Columns:    ServiceColumns,
		PrimaryKey: []*schema.Column{ServiceColumns[0]},
	}

	// ServiceProvidedColumns holds the columns for the "service_provided" table.
	ServiceProvidedColumns = baseColumns(
		str("title", "名称"),
		text("description", "描述"),
		str("image_url", "配图URL"),
		integer("sort_order", "排序，越小越靠前"),
	)
	// ServiceProvidedTable holds the schema information for the "service_provided" table.
	ServiceProvidedTable = &schema.Table{
		Name:       "service_provided",
		Comment:    "已提供的服务",
		Columns:    ServiceProvidedColumns,
		PrimaryKey: []*schema.Column{ServiceProvidedColumns[0]},
	}

	// SeperateServiceColumns holds the columns for the "seperate_service" table.
	SeperateServiceColumns = baseColumns(
		str("title", "标题"),
		text("summary", "简介"),
		text("content", "详情(富文本)"),
		str("image_url", "配图URL"),
		&schema.Column{Name: "price", Type: field.TypeFloat64, Default: 0, Comment: "价格"},
	)
	// SeperateServiceTable holds the schema information for the "seperate_service" table.
	// 表名沿用线上库中的拼写
	SeperateServiceTable = &schema.Table{
		Name:       "seperate_service",
		Comment:    "独立服务详情",
		Columns:    SeperateServiceColumns,
		PrimaryKey: []*schema.Column{SeperateServiceColumns[0]},
	}

	// TeamsColumns holds the columns for the "teams" table.
	TeamsColumns = baseColumns(
		str("name", "姓名"),
		str("role", "职位"),
		text("bio", "简介"),
		str("photo_url", "照片URL"),
		str("facebook_url", "Facebook"),
		str("linkedin_url", "LinkedIn"),
		str("twitter_url", "Twitter"),
		integer("sort_order", "排序，越小越靠前"),
	)
	// TeamsTable holds the schema information for the "teams" table.
	TeamsTable = &schema.Table{
		Name:       "teams",
		Comment:    "团队成员",
		Columns:    TeamsColumns,
		PrimaryKey: []*schema.Column{TeamsColumns[0]},
	}

	// AboutReviewColumns holds the columns for the "about_review" table.
	AboutReviewColumns = baseColumns(
		str("reviewer_name", "评价人"),
		str("reviewer_title", "评价人头衔"),
		text("content", "评价内容"),
		&schema.Column{Name: "rating", Type: field.TypeInt, Default: 5, Comment: "评分 1-5"},
		str("avatar_url", "头像URL"),
	)
	// AboutReviewTable holds the schema information for the "about_review" table.
	AboutReviewTable = &schema.Table{
		Name:       "about_review",
		Comment:    "客户评价",
		Columns:    AboutReviewColumns,
		PrimaryKey: []*schema.Column{AboutReviewColumns[0]},
	}

	// FooterLinksColumns holds the columns for the "footer_links" table.
	FooterLinksColumns = baseColumns(
		str("label", "链接文字"),
		text("url", "链接地址"),
		str("group_name", "分组"),
		integer("sort_order", "排序，越小越靠前"),
	)
	// FooterLinksTable holds the schema information for the "footer_links" table.
	FooterLinksTable = &schema.Table{
		Name:       "footer_links",
		Comment:    "页脚链接",
		Columns:    FooterLinksColumns,
		PrimaryKey: []*schema.Column{FooterLinksColumns[0]},
	}

	// CountryColumns holds the columns for the "country" table.
	CountryColumns = baseColumns(
		&schema.Column{Name: "name", Type: field.TypeString, Unique: true, Size: 255, Comment: "国家名称"},
		&schema.Column{Name: "code", Type: field.TypeString, Unique: true, Size: 8, Comment: "ISO 3166-1 alpha-2"},
	)
	// CountryTable holds the schema information for the "country" table.
	CountryTable = &schema.Table{
		Name:       "country",
		Comment:    "国家",
		Columns:    CountryColumns,
		PrimaryKey: []*schema.Column{CountryColumns[0]},
	}

	// AddressColumns holds the columns for the "address" table.
	AddressColumns = baseColumns(
		str("city", "城市"),
		str("street", "街道"),
		str("postal_code", "邮编"),
		str("phone", "电话"),
		str("email", "邮箱"),
		&schema.Column{Name: "country_id", Type: field.TypeUint, Comment: "所属国家"},
	)
	// AddressTable holds the schema information for the "address" table.
	AddressTable = &schema.Table{
		Name:       "address",
		Comment:    "地址",
		Columns:    AddressColumns,
		PrimaryKey: []*schema.Column{AddressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "address_country_addresses",
				Columns:    []*schema.Column{AddressColumns[8]},
				RefColumns: []*schema.Column{CountryColumns[0]},
				OnDelete:   schema.Restrict,
			},
		},
	}

	// SettingsColumns holds the columns for the "settings" table.
	SettingsColumns = baseColumns(
		&schema.Column{Name: "config_key", Type: field.TypeString, Unique: true, Size: 255, Comment: "配置键"},
		text("value", "配置值"),
		str("comment", "说明"),
	)
	// SettingsTable holds the schema information for the "settings" table.
	SettingsTable = &schema.Table{
		Name:       "settings",
		Comment:    "站点配置",
		Columns:    SettingsColumns,
		PrimaryKey: []*schema.Column{SettingsColumns[0]},
	}

	// AdminUsersColumns holds the columns for the "admin_users" table.
	AdminUsersColumns = baseColumns(
		&schema.Column{Name: "username", Type: field.TypeString, Unique: true, Size: 64, Comment: "登录名"},
		str("password_hash", "bcrypt 哈希"),
		str("nickname", "昵称"),
		&schema.Column{Name: "last_login_at", Type: field.TypeTime, Nullable: true, Comment: "最后登录时间"},
	)
	// AdminUsersTable holds the schema information for the "admin_users" table.
	AdminUsersTable = &schema.Table{
		Name:       "admin_users",
		Comment:    "后台管理员",
		Columns:    AdminUsersColumns,
		PrimaryKey: []*schema.Column{AdminUsersColumns[0]},
	}

	// UploadsColumns holds the columns for the "uploads" table.
	UploadsColumns = baseColumns(
		str("section", "所属板块"),
		&schema.Column{Name: "object_key", Type: field.TypeString, Unique: true, Size: 512, Comment: "对象存储中的键"},
		text("url", "公开访问地址"),
		str("file_name", "原始文件名"),
		&schema.Column{Name: "size", Type: field.TypeInt64, Default: 0, Comment: "文件大小(字节)"},
		str("mime_type", "MIME 类型"),
		str("dimension", "图片尺寸"),
		str("main_color", "图片主色调"),
		str("camera", "拍摄设备"),
		str("taken_at", "拍摄时间"),
		str("policy_type", "存储策略类型"),
	)
	// UploadsTable holds the schema information for the "uploads" table.
	UploadsTable = &schema.Table{
		Name:       "uploads",
		Comment:    "上传文件记录",
		Columns:    UploadsColumns,
		PrimaryKey: []*schema.Column{UploadsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "upload_created_at",
				Unique:  false,
				Columns: []*schema.Column{UploadsColumns[1]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AboutTable,
		BlogTable,
		ContactTable,
		HomeTable,
		ServiceTable,
		ServiceProvidedTable,
		SeperateServiceTable,
		TeamsTable,
		AboutReviewTable,
		FooterLinksTable,
		CountryTable,
		AddressTable,
		SettingsTable,
		AdminUsersTable,
		UploadsTable,
	}
)

func init() {
	AddressTable.ForeignKeys[0].RefTable = CountryTable
}
