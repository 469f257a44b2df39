package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/command"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/config"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/database"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/events"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/handler"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/metrics"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/middleware"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/query"
	appredis "github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/redis"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/repository"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/token"
)

func main() {
	// Configuration is validated up front: no signing secret, no process.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database connection (write store)
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := appredis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	memberWriteRepo := repository.NewMemberWriteRepository(db)
	memberReadRepo := repository.NewMemberReadRepository(db, redis.Client)
	investReadRepo := repository.NewInvestmentReadRepository(db)

	memberCommandSvc := command.NewMemberCommandService(memberWriteRepo, memberReadRepo, publisher)
	authQuerySvc := query.NewAuthQueryService(memberWriteRepo, tokens)
	dashboardQuerySvc := query.NewDashboardQueryService(investReadRepo, memberReadRepo)

	authHandler := handler.NewAuthHandler(authQuerySvc, memberCommandSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardQuerySvc)

	authGate := middleware.AuthMiddleware(tokens, memberReadRepo)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RatePerMinute:   cfg.AuthRatePerMinute,
		Burst:           cfg.AuthRateBurst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         15 * time.Minute,
	})
	defer rateLimiter.Stop()

	collector := metrics.NewCollector()

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(collector.Middleware())

	auth := router.Group("/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.GET("/verify", authGate, authHandler.Verify)
	}

	dashboard := router.Group("/dashboard")
	dashboard.Use(authGate)
	{
		dashboard.GET("/:memberID", dashboardHandler.GetDashboard)
		dashboard.GET("/:memberID/investments", dashboardHandler.ListInvestments)
		dashboard.GET("/:memberID/profile", dashboardHandler.GetProfile)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("CM FUND API starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
