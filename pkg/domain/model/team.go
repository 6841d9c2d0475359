package model

// TeamMember 对应 teams 表
type TeamMember struct {
	Base
	Name        string `json:"name" db:"name"`
	Role        string `json:"role" db:"role"`
	Bio         string `json:"bio" db:"bio"`
	PhotoURL    string `json:"photo_url" db:"photo_url"`
	FacebookURL string `json:"facebook_url" db:"facebook_url"`
	LinkedinURL string `json:"linkedin_url" db:"linkedin_url"`
	TwitterURL  string `json:"twitter_url" db:"twitter_url"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}
