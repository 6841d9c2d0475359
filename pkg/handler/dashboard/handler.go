/*
 * @Description: 后台管理页面（服务端渲染）
 * @Author: 安知鱼
 * @Date: 2026-10-19 16:31:55
 * @LastEditTime: 2026-10-19 16:58:10
 * @LastEditors: 安知鱼
 */
package dashboard

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-cms/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/response"
	service_auth "github.com/anzhiyu-c/anheyu-cms/pkg/service/auth"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/imagecaptcha"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"

	"github.com/gin-gonic/gin"
)

// NoDataMessage 编辑的记录不存在时显示的文字
const NoDataMessage = "No data available"

// 重定向后通过 ?msg= 显示的提示
var flashMessages = map[string]string{
	"created":   "创建成功",
	"updated":   "保存成功",
	"unchanged": "内容没有变化，未保存",
	"deleted":   "删除成功",
}

type Handler struct {
	registry   *content.Registry
	uploadSvc  upload.IUploadService
	authSvc    service_auth.AuthService
	tokenSvc   service_auth.TokenService
	captchaSvc imagecaptcha.ImageCaptchaService
	settingSvc setting.SettingService
}

func NewHandler(
	registry *content.Registry,
	uploadSvc upload.IUploadService,
	authSvc service_auth.AuthService,
	tokenSvc service_auth.TokenService,
	captchaSvc imagecaptcha.ImageCaptchaService,
	settingSvc setting.SettingService,
) *Handler {
	return &Handler{
		registry:   registry,
		uploadSvc:  uploadSvc,
		authSvc:    authSvc,
		tokenSvc:   tokenSvc,
		captchaSvc: captchaSvc,
		settingSvc: settingSvc,
	}
}

// view 返回所有页面共用的模板数据
func (h *Handler) view(c *gin.Context, title string) gin.H {
	siteName := h.settingSvc.Get(constant.KeyAdminPageTitle.String())
	if siteName == "" {
		siteName = h.settingSvc.Get(constant.KeyAppName.String())
	}
	return gin.H{
		"Title":    title,
		"SiteName": siteName,
		"Admin":    middleware.ClaimsFrom(c),
		"Sections": h.registry.Sections(),
		"Current":  c.Param("section"),
		"Flash":    flashMessages[c.Query("msg")],
	}
}

// renderError 渲染错误提示页，文字来自错误本身
func (h *Handler) renderError(c *gin.Context, section *content.Section, err error) {
	data := h.view(c, "出错了")
	data["Section"] = section
	data["Message"] = err.Error()
	status := response.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("[Dashboard] ⚠️ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.HTML(status, "message.html", data)
}

type sectionStat struct {
	Section content.Section
	Count   int64
	Error   string
}

// Index 概览页，列出每个板块的记录数
func (h *Handler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	panels := h.registry.Panels()
	stats := make([]sectionStat, 0, len(panels))
	for _, p := range panels {
		stat := sectionStat{Section: p.Section()}
		n, err := p.Count(ctx)
		if err != nil {
			stat.Error = err.Error()
		}
		stat.Count = n
		stats = append(stats, stat)
	}
	data := h.view(c, "概览")
	data["Stats"] = stats
	c.HTML(http.StatusOK, "index.html", data)
}

// --- 登录 ---

// safeNext 只允许跳回后台页面
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") && next != middleware.LoginPath {
		return next
	}
	return "/admin"
}

func (h *Handler) renderLogin(c *gin.Context, status int, username, next, errMsg string) {
	data := h.view(c, "登录")
	data["Admin"] = nil
	data["Username"] = username
	data["Next"] = next
	data["Error"] = errMsg
	if h.authSvc.CaptchaRequired() {
		id, image, err := h.captchaSvc.Generate(c.Request.Context())
		if err != nil {
			log.Printf("[Dashboard] ⚠️ 生成验证码失败: %v", err)
		} else {
			data["CaptchaID"] = id
			// base64Captcha 返回 data URI，需要标记为安全地址
			data["CaptchaImage"] = template.URL(image)
		}
	}
	c.HTML(status, "login.html", data)
}

// LoginPage GET /admin/login
func (h *Handler) LoginPage(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "", c.Query("next"), "")
}

// Login POST /admin/login，成功后写入会话 Cookie
func (h *Handler) Login(c *gin.Context) {
	var req service_auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, "", c.PostForm("next"), "参数错误")
		return
	}
	next := c.PostForm("next")

	admin, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		h.renderLogin(c, response.StatusOf(err), req.Username, next, err.Error())
		return
	}
	tokens, err := h.tokenSvc.GenerateSessionTokens(c.Request.Context(), admin)
	if err != nil {
		log.Printf("[Dashboard] ⚠️ 生成会话令牌失败: %v", err)
		h.renderLogin(c, http.StatusInternalServerError, req.Username, next, "登录失败，请稍后再试")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, tokens.AccessToken, int(auth.AccessTokenTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	log.Printf("[Dashboard] ✅ 管理员 '%s' 登录成功", admin.Username)
	c.Redirect(http.StatusFound, safeNext(next))
}

// LoginLimited 登录过于频繁时的页面
func (h *Handler) LoginLimited(c *gin.Context) {
	h.renderLogin(c, http.StatusTooManyRequests, c.PostForm("username"), c.PostForm("next"), "登录尝试过于频繁，请稍后再试")
}

// Logout 清除会话 Cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// isNotFound 区分"记录不存在"和其他错误
func isNotFound(err error) bool {
	return errors.Is(err, constant.ErrNotFound)
}
