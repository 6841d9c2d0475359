package model

// Home 对应 home 表，首页首屏内容
type Home struct {
	Base
	HeroTitle    string `json:"hero_title" db:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle" db:"hero_subtitle"`
	HeroImageURL string `json:"hero_image_url" db:"hero_image_url"`
	CtaText      string `json:"cta_text" db:"cta_text"`
	CtaLink      string `json:"cta_link" db:"cta_link"`
}
