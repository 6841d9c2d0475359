package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	service_auth "github.com/anzhiyu-c/anheyu-cms/pkg/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "good-token"

type fakeTokens struct{}

func (fakeTokens) GenerateSessionTokens(context.Context, *model.AdminUser) (*service_auth.SessionTokens, error) {
	return nil, nil
}

func (fakeTokens) RefreshAccessToken(context.Context, string) (string, int64, error) {
	return "", 0, nil
}

func (fakeTokens) ParseAccessToken(_ context.Context, token string) (*auth.CustomClaims, error) {
	if token != validToken {
		return nil, constant.ErrInvalidToken
	}
	return &auth.CustomClaims{Username: "admin"}, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewMiddleware(fakeTokens{})
	whoami := func(c *gin.Context) {
		c.String(http.StatusOK, ClaimsFrom(c).Username)
	}
	r := gin.New()
	r.GET("/api/me", m.JWTAuth(), whoami)
	r.GET("/admin/blog", m.DashboardAuth(), whoami)
	r.POST("/admin/blog", m.DashboardAuth(), whoami)
	return r
}

func TestJWTAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{name: "Bearer令牌", header: "Bearer " + validToken, want: http.StatusOK},
		{name: "接口不接受会话Cookie", cookie: validToken, want: http.StatusUnauthorized},
		{name: "缺少令牌", want: http.StatusUnauthorized},
		{name: "令牌无效", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "非Bearer头不回退到Cookie", header: "Basic abc", cookie: validToken, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestDashboardAuthRedirects(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/blog?page=2", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath+"?next=%2Fadmin%2Fblog%3Fpage%3D2", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/blog", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"), "POST 请求不带 next")

	req := httptest.NewRequest(http.MethodGet, "/admin/blog", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: validToken})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(1, 2)
	defer limiter.Stop()

	r := gin.New()
	r.POST("/login", RateLimit(limiter, nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"), "突发额度用完后被限流")
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"), "不同 IP 互不影响")
}

func TestRateLimitCustomHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(1, 1)
	defer limiter.Stop()

	r := gin.New()
	limited := func(c *gin.Context) { c.String(http.StatusTooManyRequests, "slow down") }
	r.POST("/login", RateLimit(limiter, limited), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, want, w.Code, "第 %d 次请求", i+1)
	}
}

func TestCors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Cors([]string{"https://site.example/", " "}))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/api/public/home", ok)
	r.GET("/api/blog", ok)
	r.GET("/admin", ok)

	tests := []struct {
		name        string
		method      string
		path        string
		origin      string
		wantStatus  int
		wantOrigin  string
		credentials string
	}{
		{name: "公开接口", method: http.MethodGet, path: "/api/public/home", origin: "https://evil.example", wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "后台接口放行白名单来源", method: http.MethodGet, path: "/api/blog", origin: "https://site.example", wantStatus: http.StatusOK, wantOrigin: "https://site.example", credentials: "true"},
		{name: "预检请求", method: http.MethodOptions, path: "/api/blog", origin: "https://site.example", wantStatus: http.StatusNoContent, wantOrigin: "https://site.example", credentials: "true"},
		{name: "未知来源不回显", method: http.MethodGet, path: "/api/blog", origin: "https://evil.example", wantStatus: http.StatusOK},
		{name: "未知来源预检", method: http.MethodOptions, path: "/api/blog", origin: "https://evil.example", wantStatus: http.StatusNoContent},
		{name: "非接口路由", method: http.MethodGet, path: "/admin", origin: "https://site.example", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.credentials, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}
