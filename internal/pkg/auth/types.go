/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-11 18:38:27
 * @LastEditTime: 2026-10-19 12:16:02
 * @LastEditors: 安知鱼
 */
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey 是在 gin.Context 中存取 Claims 的键
const ClaimsKey = "admin_claims"

// SessionCookieName 后台页面使用的会话 Cookie
const SessionCookieName = "anheyu_session"

const (
	Issuer = "anheyu-cms"

	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType 区分访问令牌和刷新令牌，刷新令牌不能用来访问接口
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// CustomClaims 定义了 JWT 的自定义 Claims，AdminID 为管理员的公共 ID
type CustomClaims struct {
	AdminID   string    `json:"admin_id"`
	Username  string    `json:"username,omitempty"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}
