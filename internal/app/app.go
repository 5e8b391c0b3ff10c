package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/controller"
	"brainbox_backend/internal/repository"
	"brainbox_backend/internal/service"
	"brainbox_backend/pkg/configwatcher"
	"brainbox_backend/pkg/database"
	"brainbox_backend/pkg/logger"
	"brainbox_backend/pkg/monitoring"
	"brainbox_backend/pkg/security"
	"brainbox_backend/pkg/tracing"

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
	user        *repository.UserRepository
	mood        *repository.MoodRepository
	chat        *repository.ChatRepository
	assessment  *repository.AssessmentRepository
	affirmation *repository.AffirmationRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	email       *service.EmailService
	mood        *service.MoodService
	chat        *service.ChatService
	assessment  *service.AssessmentService
	affirmation *service.AffirmationService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	mood        *controller.MoodController
	chat        *controller.ChatController
	assessment  *controller.AssessmentController
	affirmation *controller.AffirmationController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		mood:        repository.NewMoodRepository(db),
		chat:        repository.NewChatRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		affirmation: repository.NewAffirmationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.email = service.NewEmailService(cfg.Mail)
	s.auth = service.NewAuthService(repos.user, rdb, s.email, cfg)
	s.user = service.NewUserService(repos.user)
	s.mood = service.NewMoodService(repos.mood, cfg.Classifier)
	s.chat = service.NewChatService(repos.chat, cfg.AI)
	s.assessment = service.NewAssessmentService(repos.assessment)
	s.affirmation = service.NewAffirmationService(repos.affirmation)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		mood:        controller.NewMoodController(s.mood),
		chat:        controller.NewChatController(s.chat),
		assessment:  controller.NewAssessmentController(s.assessment, s.user, s.email),
		affirmation: controller.NewAffirmationController(s.affirmation),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
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
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("brainbox-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新（目前仅限流/CORS 等可重载项）
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		app.Config = reloaded
		for _, cb := range app.configCallbacks {
			cb(reloaded)
		}
		logger.Log.Info("Config reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
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
