// internal/infra/router/router.go
package router

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-cms/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	"github.com/anzhiyu-c/anheyu-cms/pkg/domain/model"
	auth_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/auth"
	content_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/content"
	"github.com/anzhiyu-c/anheyu-cms/pkg/handler/dashboard"
	"github.com/anzhiyu-c/anheyu-cms/pkg/handler/health"
	site_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/site"
	upload_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/upload"

	"github.com/gin-gonic/gin"
)

// NoCacheMiddleware 后台接口和页面的响应都不允许被缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}

type Router struct {
	authHandler      *auth_handler.AuthHandler
	contentHandler   *content_handler.Handler
	uploadHandler    *upload_handler.Handler
	dashboardHandler *dashboard.Handler
	healthHandler    *health.Handler
	siteHandler      *site_handler.Handler
	mw               *middleware.Middleware
	loginLimiter     *middleware.IPRateLimiter
	collector        *metrics.Collector
	policy           *model.StoragePolicy
	corsOrigins      []string
}

func NewRouter(
	authHandler *auth_handler.AuthHandler,
	contentHandler *content_handler.Handler,
	uploadHandler *upload_handler.Handler,
	dashboardHandler *dashboard.Handler,
	healthHandler *health.Handler,
	siteHandler *site_handler.Handler,
	mw *middleware.Middleware,
	loginLimiter *middleware.IPRateLimiter,
	collector *metrics.Collector,
	policy *model.StoragePolicy,
	corsOrigins []string,
) *Router {
	return &Router{
		authHandler:      authHandler,
		contentHandler:   contentHandler,
		uploadHandler:    uploadHandler,
		dashboardHandler: dashboardHandler,
		healthHandler:    healthHandler,
		siteHandler:      siteHandler,
		mw:               mw,
		loginLimiter:     loginLimiter,
		collector:        collector,
		policy:           policy,
		corsOrigins:      corsOrigins,
	}
}

// Setup 在 engine 上注册全部路由
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Cors(r.corsOrigins), middleware.Metrics(r.collector))
	engine.HTMLRender = dashboard.NewRenderer()

	engine.GET("/health", r.healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(r.collector.Handler()))
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin")
	})

	// 本地存储时由本服务直接提供上传文件
	if r.policy != nil && r.policy.Type == constant.PolicyTypeLocal {
		engine.Static(constant.LocalUploadRoute, r.policy.BucketName)
	}

	apiGroup := engine.Group("/api")
	r.registerPublicRoutes(apiGroup)
	r.registerAuthRoutes(apiGroup)
	r.registerUploadRoutes(apiGroup)
	r.registerSettingRoutes(apiGroup)
	r.registerContentRoutes(apiGroup)

	r.registerDashboardRoutes(engine)
}

func (r *Router) registerPublicRoutes(api *gin.RouterGroup) {
	public := api.Group("/public")
	{
		public.GET("/site", r.siteHandler.GetSiteConfig)
		public.GET("/sections", r.contentHandler.ListSections)
		public.GET("/:section", r.contentHandler.PublicList)
	}
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth").Use(NoCacheMiddleware())
	{
		auth.GET("/captcha", r.authHandler.GetCaptcha)
		auth.POST("/login", middleware.RateLimit(r.loginLimiter, nil), r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.RefreshToken)
	}
}

func (r *Router) registerUploadRoutes(api *gin.RouterGroup) {
	uploads := api.Group("").Use(NoCacheMiddleware(), r.mw.JWTAuth())
	{
		uploads.POST("/upload", r.uploadHandler.Upload)
		uploads.GET("/uploads", r.uploadHandler.List)
		uploads.DELETE("/uploads/:id", r.uploadHandler.Delete)
	}
}

func (r *Router) registerSettingRoutes(api *gin.RouterGroup) {
	settings := api.Group("/settings").Use(NoCacheMiddleware(), r.mw.JWTAuth())
	{
		settings.GET("", r.siteHandler.ListSettings)
		settings.PUT("", r.siteHandler.UpdateSettings)
	}
}

func (r *Router) registerContentRoutes(api *gin.RouterGroup) {
	sections := api.Group("/:section").Use(NoCacheMiddleware(), r.mw.JWTAuth())
	{
		sections.GET("", r.contentHandler.List)
		sections.POST("", r.contentHandler.Create)
		sections.GET("/:id", r.contentHandler.Get)
		sections.PUT("/:id", r.contentHandler.Update)
		sections.DELETE("/:id", r.contentHandler.Delete)
	}
}

func (r *Router) registerDashboardRoutes(engine *gin.Engine) {
	h := r.dashboardHandler

	admin := engine.Group("/admin").Use(NoCacheMiddleware())
	{
		admin.GET("/login", h.LoginPage)
		admin.POST("/login", middleware.RateLimit(r.loginLimiter, h.LoginLimited), h.Login)
		admin.GET("/logout", h.Logout)
	}

	pages := engine.Group("/admin").Use(NoCacheMiddleware(), r.mw.DashboardAuth())
	{
		pages.GET("", h.Index)
		pages.GET("/:section", h.List)
		pages.POST("/:section", h.Create)
		pages.GET("/:section/new", h.New)
		pages.POST("/:section/:id", h.Update)
		pages.GET("/:section/:id/edit", h.Edit)
		pages.GET("/:section/:id/delete", h.ConfirmDelete)
		pages.POST("/:section/:id/delete", h.Delete)
	}
}
