package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursehub_backend/internal/config"
	"coursehub_backend/internal/controller"
	"coursehub_backend/internal/repository"
	"coursehub_backend/internal/service"
	"coursehub_backend/pkg/configwatcher"
	"coursehub_backend/pkg/database"
	"coursehub_backend/pkg/logger"
	"coursehub_backend/pkg/monitoring"
	"coursehub_backend/pkg/security"
	"coursehub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	section    *repository.SectionRepository
	content    *repository.ContentItemRepository
	enrollment *repository.EnrollmentRepository
	feedback   *repository.FeedbackRepository
}

type services struct {
	auth       *service.AuthService
	course     *service.CourseService
	content    *service.ContentService
	enrollment *service.EnrollmentService
	feedback   *service.FeedbackService
	user       *service.UserService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	content    *controller.ContentController
	enrollment *controller.EnrollmentController
	feedback   *controller.FeedbackController
	user       *controller.UserController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		section:    repository.NewSectionRepository(db),
		content:    repository.NewContentItemRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		feedback:   repository.NewFeedbackRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	return &services{
		auth: service.NewAuthService(repos.user, cfg),
		course: service.NewCourseService(
			repos.course,
			repos.section,
			repos.content,
			repos.user,
			repos.category,
			repos.enrollment,
			repos.feedback,
			db,
			rdb,
		),
		content:    service.NewContentService(repos.content, repos.section, repos.course),
		enrollment: service.NewEnrollmentService(repos.enrollment, repos.course),
		feedback:   service.NewFeedbackService(repos.feedback, repos.course, repos.user),
		user:       service.NewUserService(repos.user),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		content:    controller.NewContentController(s.content),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		feedback:   controller.NewFeedbackController(s.feedback),
		user:       controller.NewUserController(s.user),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存只是加速，连不上降级为直查数据库
		logger.Log.Warn("Failed to initialize redis, course list cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("coursehub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", app.applyConfig)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) applyConfig(cfg *config.Config) {
	logger.Log.Info("Configuration reloaded")
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
