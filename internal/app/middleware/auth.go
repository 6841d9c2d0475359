// internal/app/middleware/auth.go
package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	service_auth "github.com/anzhiyu-c/anheyu-cms/pkg/service/auth"

	"github.com/gin-gonic/gin"
)

// LoginPath 后台登录页
const LoginPath = "/admin/login"

type Middleware struct {
	tokenSvc service_auth.TokenService
}

func NewMiddleware(tokenSvc service_auth.TokenService) *Middleware {
	return &Middleware{tokenSvc: tokenSvc}
}

// tokenFromRequest 优先读取 Authorization: Bearer，allowCookie 为 true 时再读取会话 Cookie
func tokenFromRequest(c *gin.Context, allowCookie bool) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if !allowCookie {
		return ""
	}
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// authenticate 解析令牌并写入上下文，失败返回 false
func (m *Middleware) authenticate(c *gin.Context, allowCookie bool) bool {
	tokenString := tokenFromRequest(c, allowCookie)
	if tokenString == "" {
		return false
	}
	claims, err := m.tokenSvc.ParseAccessToken(c.Request.Context(), tokenString)
	if err != nil {
		log.Printf("[JWTAuth] JWT token解析失败: %v", err)
		return false
	}
	c.Set(auth.ClaimsKey, claims)
	return true
}

// JWTAuth 是 JSON 接口使用的强制认证中间件，只接受 Authorization: Bearer，失败返回 401
func (m *Middleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c, false) {
			response.Fail(c, http.StatusUnauthorized, "未登录或登录已过期")
			c.Abort()
			return
		}
		c.Next()
	}
}

// DashboardAuth 是后台页面使用的认证中间件，失败时跳转到登录页并带上原地址
func (m *Middleware) DashboardAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticate(c, true) {
			target := LoginPath
			if c.Request.Method == http.MethodGet {
				target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFrom 返回认证中间件写入的 Claims，未认证时返回 nil
func ClaimsFrom(c *gin.Context) *auth.CustomClaims {
	v, ok := c.Get(auth.ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.CustomClaims)
	return claims
}
