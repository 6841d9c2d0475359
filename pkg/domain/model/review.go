package model

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review 对应 about_review 表，客户评价
type Review struct {
	Base
	ReviewerName  string `json:"reviewer_name" db:"reviewer_name"`
	ReviewerTitle string `json:"reviewer_title" db:"reviewer_title"`
	Content       string `json:"content" db:"content"`
	Rating        int    `json:"rating" db:"rating"`
	AvatarURL     string `json:"avatar_url" db:"avatar_url"`
}
