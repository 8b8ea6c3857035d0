package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collabhub/internal/config"
	"collabhub/internal/handlers"
	"collabhub/internal/metrics"
	"collabhub/internal/middleware"
	"collabhub/internal/repository"
	"collabhub/internal/service"
	"collabhub/pkg/database"
	"collabhub/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== CollabHub Backend Starting ===")

	cfg := config.Load()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := database.Connect(database.Config(cfg.DB))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	redisClient, err := redis.Connect(redis.Config(cfg.Redis))
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	metrics.Register()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, cacheRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileService := service.NewProfileService(profileRepo)
	postService := service.NewPostService(postRepo)
	collabService := service.NewCollaborationService(collabRepo, postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, profileRepo)
	adminService := service.NewAdminService(profileRepo, postRepo, collabRepo, cfg.Admin.ExportDir)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	postHandler := handlers.NewPostHandler(postService, collabService)
	collabHandler := handlers.NewCollaborationHandler(collabService)
	commentHandler := handlers.NewCommentHandler(commentService)
	dashboardHandler := handlers.NewDashboardHandler(postService, collabService)
	adminHandler := handlers.NewAdminHandler(adminService)

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.MetricsMiddleware())

	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": "connected",
				"redis":    "connected",
			},
		})
	})

	// Auth
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", middleware.RequireAuth(authService), authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(authService), authHandler.Me)

	// Public reads resolve identity when a token is present so the
	// detail payload can carry ownership flags.
	api.GET("/posts", middleware.OptionalAuth(authService), postHandler.List)
	api.GET("/posts/:id", middleware.OptionalAuth(authService), postHandler.Get)
	api.GET("/posts/:id/comments", commentHandler.List)
	api.GET("/profiles", profileHandler.List)
	api.GET("/profiles/:id", profileHandler.Get)

	// Authenticated mutations
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(authService))

	protected.POST("/posts", postHandler.Create)
	protected.PUT("/posts/:id", postHandler.Update)
	protected.PATCH("/posts/:id/status", postHandler.UpdateStatus)

	protected.POST("/posts/:id/collaborations", collabHandler.Join)
	protected.POST("/collaborations/:id/withdraw", collabHandler.Withdraw)
	protected.POST("/collaborations/:id/activate", collabHandler.Activate)

	protected.POST("/posts/:id/comments", commentHandler.Create)
	protected.DELETE("/comments/:id", commentHandler.Delete)

	protected.PUT("/me/profile", profileHandler.UpdateMe)
	protected.GET("/dashboard", dashboardHandler.Get)

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(authService))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/verify", adminHandler.SetVerified)
	admin.GET("/export", adminHandler.ExportUsers)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
