package model

// About 对应 about 表，"关于我们"页面的内容
type About struct {
	Base
	Title       string `json:"title" db:"title"`
	Subtitle    string `json:"subtitle" db:"subtitle"`
	Description string `json:"description" db:"description"` // 富文本 HTML
	Mission     string `json:"mission" db:"mission"`
	Vision      string `json:"vision" db:"vision"`
	ImageURL    string `json:"image_url" db:"image_url"`
}
