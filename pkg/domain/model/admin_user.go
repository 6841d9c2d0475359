package model

import "time"

// AdminUser 是后台管理员账号
type AdminUser struct {
	Base
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Nickname     string     `json:"nickname" db:"nickname"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}
