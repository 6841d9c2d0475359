package model

// Country 对应 country 表
type Country struct {
	Base
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"` // ISO 3166-1 alpha-2
}

// Address 对应 address 表，CountryID 外键指向 country.id
type Address struct {
	Base
	CountryID  uint   `json:"country_id" db:"country_id"`
	City       string `json:"city" db:"city"`
	Street     string `json:"street" db:"street"`
	PostalCode string `json:"postal_code" db:"postal_code"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
}
