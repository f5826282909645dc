package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-ops-backend/internal/config"
	"hospital-ops-backend/internal/database"
	"hospital-ops-backend/internal/handler"
	"hospital-ops-backend/internal/locking"
	"hospital-ops-backend/internal/middleware"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	resourceRepo := repository.NewResourceRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	allocationRepo := repository.NewAllocationRepo(db)
	dischargeRepo := repository.NewDischargeRepo(db)

	// 5. Initialize services
	lockManager := locking.NewManager(cfg.Engine.LockTimeout)
	authService := service.NewAuthService(userRepo, auditRepo)
	allocationEngine := service.NewAllocationEngine(resourceRepo, allocationRepo, lockManager)
	resourceService := service.NewResourceService(resourceRepo, allocationRepo, auditRepo)
	bookingService := service.NewBookingService(bookingRepo, allocationEngine, auditRepo)
	dischargeService := service.NewDischargeService(dischargeRepo, allocationEngine, auditRepo)
	workerService := service.NewWorkerService(resourceRepo, allocationRepo, bookingRepo, allocationEngine, cfg.Engine.SweepInterval)

	// 6. Start availability sweeper in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	resourceHandler := handler.NewResourceHandler(resourceService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	dischargeHandler := handler.NewDischargeHandler(dischargeService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-ops-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Resource registry routes (authenticated)
	resources := r.Group("/resources")
	resources.Use(middleware.AuthMiddleware())
	{
		resources.GET("", resourceHandler.ListResources)
		resources.GET("/available", resourceHandler.ListAvailable)
		resources.GET("/:id", resourceHandler.GetResource)

		// Admin-only routes
		resources.POST("", middleware.RequireAdmin(), resourceHandler.RegisterResource)
		resources.PATCH("/:id/status", middleware.RequireAdmin(), resourceHandler.SetStatus)
		resources.DELETE("/:id", middleware.RequireAdmin(), resourceHandler.DeleteResource)
	}

	// Booking routes (authenticated)
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.POST("/:id/start", bookingHandler.StartBooking)
		bookings.POST("/:id/complete", bookingHandler.CompleteBooking)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
	}

	// Discharge routes (authenticated)
	discharges := r.Group("/discharges")
	discharges.Use(middleware.AuthMiddleware())
	{
		discharges.POST("", dischargeHandler.CreateDischarge)
		discharges.GET("", dischargeHandler.ListDischarges)
		discharges.GET("/:id", dischargeHandler.GetDischarge)
		discharges.POST("/:id/approve", middleware.RequireRoles("doctor", "admin"), dischargeHandler.ApproveDischarge)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel availability sweeper context
	cancel()
	log.Println("Server exited")
}
