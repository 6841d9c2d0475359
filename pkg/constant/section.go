package constant

// SectionKey 是内容板块的唯一标识，同时也是 URL 中使用的名字
type SectionKey string

func (k SectionKey) String() string {
	return string(k)
}

const (
	SectionAbout           SectionKey = "about"
	SectionBlog            SectionKey = "blog"
	SectionContact         SectionKey = "contact"
	SectionHome            SectionKey = "home"
	SectionService         SectionKey = "service"
	SectionServiceProvided SectionKey = "service_provided"
	SectionSeparateService SectionKey = "separate_service"
	SectionTeams           SectionKey = "teams"
	SectionReview          SectionKey = "review"
	SectionFooterLinks     SectionKey = "footer_links"
	SectionCountry         SectionKey = "country"
	SectionAddress         SectionKey = "address"
)

// 内容变更动作
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PublicSectionCacheKey 返回公开列表的缓存键
func PublicSectionCacheKey(section SectionKey) string {
	return "content:public:" + string(section)
}
