package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumo_backend/internal/config"
	"lumo_backend/internal/controller"
	"lumo_backend/internal/repository"
	"lumo_backend/internal/service"
	"lumo_backend/pkg/configwatcher"
	"lumo_backend/pkg/database"
	"lumo_backend/pkg/logger"
	"lumo_backend/pkg/monitoring"
	"lumo_backend/pkg/security"
	"lumo_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	internship *repository.InternshipRepository
	question   *repository.QuestionRepository
	chat       *repository.ChatRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	user         *service.UserService
	internship   *service.InternshipService
	conversation *service.ConversationService
	ai           *service.AIService
	executor     *service.ExecutorService
	question     *service.QuestionService
	chat         *service.ChatService
	analysis     *service.AnalysisService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	internship *controller.InternshipController
	chat       *controller.ChatController
	code       *controller.CodeController
	analysis   *controller.AnalysisController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		internship: repository.NewInternshipRepository(db),
		question:   repository.NewQuestionRepository(db),
		chat:       repository.NewChatRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.internship = service.NewInternshipService(repos.internship, repos.question)

	s.ai = service.NewAIService(cfg.AI)
	s.executor = service.NewExecutorService(cfg.Executor)
	s.conversation = service.NewConversationService(repos.chat)

	s.question = service.NewQuestionService(repos.internship, repos.question, s.ai)
	s.chat = service.NewChatService(s.conversation, s.ai)
	s.analysis = service.NewAnalysisService(s.conversation, s.ai)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		internship: controller.NewInternshipController(s.internship, s.question),
		chat:       controller.NewChatController(s.chat, s.conversation, s.user),
		code:       controller.NewCodeController(s.executor),
		analysis:   controller.NewAnalysisController(s.analysis),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

// watchConfig hot-reloads AI credentials so key rotation does not need
// a restart. Everything else requires one.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		logger.Log.Info("config reloaded, updating AI credentials")
		a.services.ai.UpdateConfig(cfg.AI)
	})
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
		// Chat still works without redis, the window cache is optional.
		logger.Log.Warn("Failed to initialize redis, running without the chat window cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lumo-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
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
