package model

// Contact 对应 contact 表
type Contact struct {
	Base
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
	AddressLine  string `json:"address_line" db:"address_line"`
	MapURL       string `json:"map_url" db:"map_url"`
	WorkingHours string `json:"working_hours" db:"working_hours"`
}
