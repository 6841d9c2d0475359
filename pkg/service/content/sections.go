/*
 * @Description: 后台包含的全部内容板块
 * @Author: 安知鱼
 * @Date: 2026-10-19 13:12:30
 * @LastEditTime: 2026-10-19 13:44:19
 * @LastEditors: 安知鱼
 */
package content

import (
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/repository"
)

// Repositories 汇总了各板块的仓储
type Repositories struct {
	About           repository.ContentRepository[model.About]
	Blog            repository.BlogRepository
	Contact         repository.ContentRepository[model.Contact]
	Home            repository.ContentRepository[model.Home]
	Service         repository.ContentRepository[model.Service]
	ServiceProvided repository.ContentRepository[model.ServiceProvided]
	SeparateService repository.ContentRepository[model.SeparateService]
	Team            repository.ContentRepository[model.TeamMember]
	Review          repository.ContentRepository[model.Review]
	FooterLink      repository.ContentRepository[model.FooterLink]
	Country         repository.CountryRepository
	Address         repository.AddressRepository
}

var (
	AboutSection = Section{
		Key: constant.SectionAbout, Title: "关于我们", Table: "about", TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "标题", Kind: KindText, Required: true},
			{Name: "subtitle", Label: "副标题", Kind: KindText},
			{Name: "description", Label: "介绍", Kind: KindRichText},
			{Name: "mission", Label: "使命", Kind: KindTextarea},
			{Name: "vision", Label: "愿景", Kind: KindTextarea},
			{Name: "image_url", Label: "配图", Kind: KindImage},
		},
	}

	BlogSection = Section{
		Key: constant.SectionBlog, Title: "博客", Table: "blog", TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "标题", Kind: KindText, Required: true},
			{Name: "slug", Label: "Slug", Kind: KindText, Help: "留空时根据标题自动生成"},
			{Name: "author", Label: "作者", Kind: KindText},
			{Name: "excerpt", Label: "摘要", Kind: KindTextarea, Help: "留空时从正文截取"},
			{Name: "content", Label: "正文 (Markdown)", Kind: KindMarkdown, Required: true},
			{Name: "cover_image_url", Label: "封面", Kind: KindImage},
			{Name: "is_published", Label: "发布", Kind: KindBool},
		},
	}

	ContactSection = Section{
		Key: constant.SectionContact, Title: "联系方式", Table: "contact", TitleField: "email",
		Fields: []Field{
			{Name: "email", Label: "邮箱", Kind: KindEmail, Required: true},
			{Name: "phone", Label: "电话", Kind: KindText},
			{Name: "address_line", Label: "地址", Kind: KindText},
			{Name: "map_url", Label: "地图链接", Kind: KindURL},
			{Name: "working_hours", Label: "工作时间", Kind: KindText},
		},
	}

	HomeSection = Section{
		Key: constant.SectionHome, Title: "首页", Table: "home", TitleField: "hero_title",
		Fields: []Field{
			{Name: "hero_title", Label: "主标题", Kind: KindText, Required: true},
			{Name: "hero_subtitle", Label: "副标题", Kind: KindTextarea},
			{Name: "hero_image_url", Label: "首屏图片", Kind: KindImage},
			{Name: "cta_text", Label: "按钮文字", Kind: KindText},
			{Name: "cta_link", Label: "按钮链接", Kind: KindURL},
		},
	}

	ServiceSection = Section{
		Key: constant.SectionService, Title: "服务", Table: "service", TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "标题", Kind: KindText, Required: true},
			{Name: "description", Label: "描述", Kind: KindTextarea},
			{Name: "icon_url", Label: "图标", Kind: KindImage},
			{Name: "sort_order", Label: "排序", Kind: KindNumber},
		},
	}

	ServiceProvidedSection = Section{
		Key: constant.SectionServiceProvided, Title: "已提供的服务", Table: "service_provided", TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "标题", Kind: KindText, Required: true},
			{Name: "description", Label: "描述", Kind: KindTextarea},
			{Name: "image_url", Label: "图片", Kind: KindImage},
			{Name: "sort_order", Label: "排序", Kind: KindNumber},
		},
	}

	SeparateServiceSection = Section{
		Key: constant.SectionSeparateService, Title: "服务详情", Table: "seperate_service", TitleField: "title",
		Fields: []Field{
			{Name: "title", Label: "标题", Kind: KindText, Required: true},
			{Name: "summary", Label: "简介", Kind: KindTextarea},
			{Name: "content", Label: "详情", Kind: KindRichText},
			{Name: "image_url", Label: "图片", Kind: KindImage},
			{Name: "price", Label: "价格", Kind: KindDecimal},
		},
	}

	TeamsSection = Section{
		Key: constant.SectionTeams, Title: "团队成员", Table: "teams", TitleField: "name",
		Fields: []Field{
			{Name: "name", Label: "姓名", Kind: KindText, Required: true},
			{Name: "role", Label: "职位", Kind: KindText},
			{Name: "bio", Label: "简介", Kind: KindTextarea},
			{Name: "photo_url", Label: "照片", Kind: KindImage},
			{Name: "facebook_url", Label: "Facebook", Kind: KindURL},
			{Name: "linkedin_url", Label: "LinkedIn", Kind: KindURL},
			{Name: "twitter_url", Label: "Twitter", Kind: KindURL},
			{Name: "sort_order", Label: "排序", Kind: KindNumber},
		},
	}

	ReviewSection = Section{
		Key: constant.SectionReview, Title: "客户评价", Table: "about_review", TitleField: "reviewer_name",
		Fields: []Field{
			{Name: "reviewer_name", Label: "评价人", Kind: KindText, Required: true},
			{Name: "reviewer_title", Label: "头衔", Kind: KindText},
			{Name: "content", Label: "评价内容", Kind: KindTextarea, Required: true},
			{Name: "rating", Label: "评分 (1-5)", Kind: KindNumber},
			{Name: "avatar_url", Label: "头像", Kind: KindImage},
		},
	}

	FooterLinksSection = Section{
		Key: constant.SectionFooterLinks, Title: "页脚链接", Table: "footer_links", TitleField: "label",
		Fields: []Field{
			{Name: "label", Label: "文字", Kind: KindText, Required: true},
			{Name: "url", Label: "链接", Kind: KindURL, Required: true},
			{Name: "group_name", Label: "分组", Kind: KindText},
			{Name: "sort_order", Label: "排序", Kind: KindNumber},
		},
	}

	CountrySection = Section{
		Key: constant.SectionCountry, Title: "国家", Table: "country", TitleField: "name",
		Fields: []Field{
			{Name: "name", Label: "名称", Kind: KindText, Required: true},
			{Name: "code", Label: "代码 (ISO 两位)", Kind: KindText, Required: true},
		},
	}
)

// addressSection 的国家下拉框依赖仓储，所以在构造时生成
func addressSection(countryRepo repository.CountryRepository) Section {
	return Section{
		Key: constant.SectionAddress, Title: "地址", Table: "address", TitleField: "city",
		Fields: []Field{
			{Name: "country_id", Label: "国家", Kind: KindSelect, Required: true, Options: countryOptions(countryRepo)},
			{Name: "city", Label: "城市", Kind: KindText, Required: true},
			{Name: "street", Label: "街道", Kind: KindText},
			{Name: "postal_code", Label: "邮编", Kind: KindText},
			{Name: "phone", Label: "电话", Kind: KindText},
			{Name: "email", Label: "邮箱", Kind: KindEmail},
		},
	}
}

// NewDefaultRegistry 按后台菜单顺序注册所有板块
func NewDefaultRegistry(repos Repositories, deps Deps) *Registry {
	return NewRegistry(
		NewPanel(NewService[model.Home](HomeSection, repos.Home, Hooks[model.Home]{}, deps)),
		NewPanel(NewService[model.About](AboutSection, repos.About, aboutHooks(), deps)),
		NewPanel(NewService[model.Blog](BlogSection, repos.Blog, blogHooks(repos.Blog), deps)),
		NewPanel(NewService[model.Contact](ContactSection, repos.Contact, Hooks[model.Contact]{}, deps)),
		NewPanel(NewService[model.Service](ServiceSection, repos.Service, Hooks[model.Service]{}, deps)),
		NewPanel(NewService[model.ServiceProvided](ServiceProvidedSection, repos.ServiceProvided, Hooks[model.ServiceProvided]{}, deps)),
		NewPanel(NewService[model.SeparateService](SeparateServiceSection, repos.SeparateService, separateServiceHooks(), deps)),
		NewPanel(NewService[model.TeamMember](TeamsSection, repos.Team, Hooks[model.TeamMember]{}, deps)),
		NewPanel(NewService[model.Review](ReviewSection, repos.Review, reviewHooks(), deps)),
		NewPanel(NewService[model.FooterLink](FooterLinksSection, repos.FooterLink, Hooks[model.FooterLink]{}, deps)),
		NewPanel(NewService[model.Country](CountrySection, repos.Country, countryHooks(repos.Country, repos.Address), deps)),
		NewPanel(NewService[model.Address](addressSection(repos.Country), repos.Address, addressHooks(repos.Country), deps)),
	)
}
