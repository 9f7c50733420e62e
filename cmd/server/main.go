// Package main 是服务端的入口点
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devvy-server/internal/cache"
	"devvy-server/internal/config"
	"devvy-server/internal/handler"
	"devvy-server/internal/middleware"
	"devvy-server/internal/model"
	"devvy-server/internal/repository"
	"devvy-server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	// 自动迁移数据库表并写入种子分类
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Fatalf("Failed to init redis: %v", err)
	}

	// 初始化 Repository 层
	categoryRepo := repository.NewCategoryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// 写入种子分类（已存在的不覆盖）
	if err := categoryRepo.Seed(context.Background(), service.DefaultCategories()); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// 初始化 Service 层
	categoryService := service.NewCategoryService(categoryRepo, redisCache)
	sessionService := service.NewSessionService(sessionRepo, messageRepo)
	generator := newGenerator(cfg, categoryService)
	chatService := service.NewChatService(db, sessionService, messageRepo, categoryService, generator, cfg.Chat)
	feedbackService := service.NewFeedbackService(feedbackRepo, cfg.Chat)

	// 初始化 Handler 层
	healthHandler := handler.NewHealthHandler(db, redisCache)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	chatHandler := handler.NewChatHandler(chatService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.Server.CORS)))

	// 注册路由
	registerRoutes(router, cfg, healthHandler, categoryHandler, chatHandler, sessionHandler, feedbackHandler)

	// 创建 HTTP 服务器
	// WriteTimeout 要覆盖 LLM 调用的 30 秒超时，否则回复还没生成连接就被掐断
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
	}

	// 在 goroutine 中启动服务器
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := redisCache.Close(); err != nil {
		log.Printf("Failed to close redis: %v", err)
	}

	log.Println("Server exited")
}

// initDatabase 初始化数据库连接
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.MySQL.Username,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
		cfg.MySQL.Charset,
	)

	// 配置 GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MySQL.MaxLifetime) * time.Second)

	log.Println("Database connected successfully")
	return db, nil
}

// autoMigrate 自动迁移数据库表
func autoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Session{},
		&model.Message{},
		&model.Feedback{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// newGenerator 根据配置选择回复生成器
// 未配置 LLM 时使用内置固定回复
func newGenerator(cfg *config.Config, categories *service.CategoryService) service.ResponseGenerator {
	if cfg.AI.Provider == "dashscope" && cfg.AI.APIKey != "" {
		log.Printf("Using dashscope response generator (model=%s)", cfg.AI.Model)
		return service.NewLLMGenerator(cfg.AI, categories)
	}
	log.Println("Using static response generator")
	return service.NewStaticGenerator()
}

// registerRoutes 注册所有路由
func registerRoutes(
	router *gin.Engine,
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	categoryHandler *handler.CategoryHandler,
	chatHandler *handler.ChatHandler,
	sessionHandler *handler.SessionHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	// 健康检查
	router.GET("/health", healthHandler.Check)

	// Devvy API 路由组
	// 身份由上游网关解析，这里只读请求头
	devvy := router.Group("/api/v1/devvy")
	devvy.Use(middleware.IdentityMiddleware(cfg.Chat.DefaultUserID))
	{
		devvy.GET("/categories", categoryHandler.ListCategories)
		devvy.GET("/categories/:code", categoryHandler.GetCategory)
		devvy.GET("/categories/:code/prompt", categoryHandler.GetSystemPrompt)
		devvy.PUT("/categories/:code/prompt", categoryHandler.UpdateSystemPrompt)

		devvy.POST("/chat", chatHandler.Chat)

		devvy.GET("/history", sessionHandler.GetChatHistory)
		devvy.GET("/sessions/:sessionId/messages", sessionHandler.GetSessionMessages)

		devvy.POST("/feedback", feedbackHandler.SaveFeedback)
	}
}
