/*
 * @Description: 应用装配，负责依赖注入和生命周期管理
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2026-10-19 17:24:06
 * @LastEditors: 安知鱼
 */
// anheyu-cms/cmd/server/app.go
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-cms/internal/app/bootstrap"
	"github.com/anzhiyu-c/anheyu-cms/internal/app/listener"
	"github.com/anzhiyu-c/anheyu-cms/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-cms/internal/app/task"
	"github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/database"
	ent_impl "github.com/anzhiyu-c/anheyu-cms/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-cms/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-cms/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/metrics"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
	"github.com/anzhiyu-c/anheyu-cms/pkg/constant"
	auth_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/auth"
	content_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/content"
	"github.com/anzhiyu-c/anheyu-cms/pkg/handler/dashboard"
	"github.com/anzhiyu-c/anheyu-cms/pkg/handler/health"
	site_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/site"
	upload_handler "github.com/anzhiyu-c/anheyu-cms/pkg/handler/upload"
	"github.com/anzhiyu-c/anheyu-cms/pkg/idgen"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/auth"
	cleanup_service "github.com/anzhiyu-c/anheyu-cms/pkg/service/cleanup"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/imagecaptcha"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/utility"
)

const shutdownTimeout = 10 * time.Second

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg          *config.Config
	engine       *gin.Engine
	server       *http.Server
	taskBroker   *task.Broker
	sqlDB        *sql.DB
	redisClient  *redis.Client
	cacheSvc     utility.CacheService
	eventBus     *event.EventBus
	loginLimiter *middleware.IPRateLimiter
}

func (a *App) PrintBanner() {
	banner := `

       █████╗ ███╗   ██╗██╗  ██╗███████╗██╗   ██╗██╗   ██╗     ██████╗███╗   ███╗███████╗
      ██╔══██╗████╗  ██║██║  ██║██╔════╝╚██╗ ██╔╝██║   ██║    ██╔════╝████╗ ████║██╔════╝
      ███████║██╔██╗ ██║███████║█████╗   ╚████╔╝ ██║   ██║    ██║     ██╔████╔██║███████╗
      ██╔══██║██║╚██╗██║██╔══██║██╔══╝    ╚██╔╝  ██║   ██║    ██║     ██║╚██╔╝██║╚════██║
      ██║  ██║██║ ╚████║██║  ██║███████╗   ██║   ╚██████╔╝    ╚██████╗██║ ╚═╝ ██║███████║
      ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝   ╚═╝    ╚═════╝      ╚═════╝╚═╝     ╚═╝╚══════╝

`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Anheyu CMS - Version: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作。
// 返回的 cleanup 在初始化失败时也可能不为 nil，调用方需要执行它。
func NewApp(configPath string) (*App, func(), error) {
	ctx := context.Background()

	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Phase 2: 初始化基础设施 ---
	sqlDB, err := database.NewSQLDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接池失败: %w", err)
	}
	drv, err := database.NewEntDriver(sqlDB, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	// 尝试连接 Redis（如果失败，将自动降级到内存缓存）
	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}

	// 临时cleanup函数，App 构造完成后由 App.Stop 接管
	tempCleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		sqlDB.Close()
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}

	// 使用智能缓存工厂，自动选择 Redis 或内存缓存
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)
	eventBus := event.NewEventBus()
	fullCleanup := func() {
		eventBus.Shutdown()
		utility.StopCacheService(cacheSvc)
		tempCleanup()
	}

	// --- Phase 3: 初始化数据仓库层 ---
	settingRepo := ent_impl.NewEntSettingRepository(drv)
	adminRepo := ent_impl.NewAdminUserRepo(drv)
	uploadRepo := ent_impl.NewUploadRepo(drv)
	repos := content.Repositories{
		About:           ent_impl.NewAboutRepo(drv),
		Blog:            ent_impl.NewBlogRepo(drv),
		Contact:         ent_impl.NewContactRepo(drv),
		Home:            ent_impl.NewHomeRepo(drv),
		Service:         ent_impl.NewServiceRepo(drv),
		ServiceProvided: ent_impl.NewServiceProvidedRepo(drv),
		SeparateService: ent_impl.NewSeparateServiceRepo(drv),
		Team:            ent_impl.NewTeamRepo(drv),
		Review:          ent_impl.NewReviewRepo(drv),
		FooterLink:      ent_impl.NewFooterLinkRepo(drv),
		Country:         ent_impl.NewCountryRepo(drv),
		Address:         ent_impl.NewAddressRepo(drv),
	}

	// --- Phase 4: 初始化应用引导程序 ---
	bootstrapper := bootstrap.NewBootstrapper(cfg, settingRepo, adminRepo, repos.Country)
	if err := bootstrapper.InitializeDatabase(ctx); err != nil {
		return nil, fullCleanup, fmt.Errorf("数据库初始化失败: %w", err)
	}

	settingSvc := setting.NewSettingService(settingRepo, eventBus)
	if err := settingSvc.LoadAllSettings(ctx); err != nil {
		return nil, fullCleanup, fmt.Errorf("从数据库加载站点配置失败: %w", err)
	}

	// --- Phase 4.5: 初始化 ID 编码器 ---
	if err := idgen.InitSqidsEncoderWithSeed(settingSvc.Get(constant.KeyIDSeed.String())); err != nil {
		return nil, fullCleanup, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}
	log.Println("✅ ID 编码器初始化成功")

	// --- Phase 5: 初始化业务逻辑层 ---
	collector := metrics.NewCollector()
	registry := content.NewDefaultRegistry(repos, content.Deps{
		Cache:     cacheSvc,
		Bus:       eventBus,
		Metrics:   collector,
		PublicTTL: cfg.GetDuration(config.KeyCachePublicTTL, content.DefaultPublicTTL),
	})

	policy, err := upload.PolicyFromConfig(cfg)
	if err != nil {
		return nil, fullCleanup, fmt.Errorf("读取存储策略失败: %w", err)
	}
	provider, err := storage.NewProvider(policy.Type)
	if err != nil {
		return nil, fullCleanup, fmt.Errorf("初始化存储驱动失败: %w", err)
	}
	log.Printf("✅ 存储策略: %s", policy.Type)

	uploadSvc := upload.NewUploadService(uploadRepo, provider, policy, settingSvc, utility.NewColorService(), eventBus, collector)
	cleanupSvc := cleanup_service.NewCleanupService(uploadSvc, registry, settingSvc)
	taskBroker := task.NewBroker(cleanupSvc, registry)
	listener.NewCacheInvalidationListener(eventBus, cacheSvc)

	captchaSvc := imagecaptcha.NewImageCaptchaService(cacheSvc)
	authSvc := auth.NewAuthService(adminRepo, settingSvc, captchaSvc)
	tokenSvc := auth.NewTokenService(adminRepo, settingSvc)

	// --- Phase 6: 初始化表现层 (Handlers) ---
	mw := middleware.NewMiddleware(tokenSvc)
	loginLimiter := middleware.NewIPRateLimiter(middleware.LoginRequestsPerMinute, middleware.LoginBurst)

	appRouter := router.NewRouter(
		auth_handler.NewAuthHandler(authSvc, tokenSvc, captchaSvc),
		content_handler.NewHandler(registry),
		upload_handler.NewHandler(uploadSvc),
		dashboard.NewHandler(registry, uploadSvc, authSvc, tokenSvc, captchaSvc, settingSvc),
		health.NewHandler(sqlDB),
		site_handler.NewHandler(settingSvc),
		mw,
		loginLimiter,
		collector,
		policy,
		cfg.GetList(config.KeyServerCorsOrigins),
	)

	// --- Phase 7: 设置路由 ---
	engine := gin.Default()
	engine.MaxMultipartMemory = 8 << 20
	if err := engine.SetTrustedProxies(nil); err != nil {
		log.Printf("⚠️ 设置可信代理失败: %v", err)
	}
	appRouter.Setup(engine)

	port := cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}

	app := &App{
		cfg:          cfg,
		engine:       engine,
		server:       &http.Server{Addr: ":" + port, Handler: engine, ReadHeaderTimeout: 10 * time.Second},
		taskBroker:   taskBroker,
		sqlDB:        sqlDB,
		redisClient:  redisClient,
		cacheSvc:     cacheSvc,
		eventBus:     eventBus,
		loginLimiter: loginLimiter,
	}
	return app, app.Stop, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) DB() *sql.DB {
	return a.sqlDB
}

// Run 启动后台任务并阻塞监听 HTTP，直到 Shutdown 被调用
func (a *App) Run() error {
	if err := a.taskBroker.RegisterCronJobs(); err != nil {
		return fmt.Errorf("注册定时任务失败: %w", err)
	}
	a.taskBroker.Start()

	log.Printf("应用程序启动成功，正在监听: %s", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接收新请求，等待进行中的请求完成
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return a.server.Shutdown(ctx)
}

// Stop 按依赖的逆序释放资源，可以重复调用
func (a *App) Stop() {
	if a.taskBroker != nil {
		a.taskBroker.Stop()
		log.Println("任务调度器已停止。")
		a.taskBroker = nil
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.eventBus != nil {
		a.eventBus.Shutdown()
	}
	if a.cacheSvc != nil {
		utility.StopCacheService(a.cacheSvc)
		a.cacheSvc = nil
	}
	if a.sqlDB != nil {
		log.Println("执行清理操作：关闭数据库连接...")
		a.sqlDB.Close()
		a.sqlDB = nil
	}
	if a.redisClient != nil {
		log.Println("关闭 Redis 连接...")
		a.redisClient.Close()
		a.redisClient = nil
	}
}
