package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nextstop/nextstop-backend/internal/config"
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/handlers"
	"github.com/nextstop/nextstop-backend/internal/middleware"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/nextstop/nextstop-backend/internal/services"
	"github.com/nextstop/nextstop-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting NextStop booking backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Repositories
	userRepo := database.NewUserRepository(db)
	refreshTokenRepo := database.NewRefreshTokenRepository(db)
	busRepo := database.NewBusRepository(db)
	routeRepo := database.NewRouteRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	scheduleSeatRepo := database.NewScheduleSeatRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	paymentRepo := database.NewPaymentRepository(db)
	notificationRepo := database.NewNotificationRepository(db)
	feedbackRepo := database.NewFeedbackRepository(db)
	reportRepo := database.NewReportRepository(db)
	adminActionRepo := database.NewAdminActionRepository(db)

	// Services
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, jwtService, cfg.Security.BcryptCost, logger)
	userService := services.NewUserService(userRepo, authService, logger)
	busService := services.NewBusService(busRepo, userRepo, logger)
	routeService := services.NewRouteService(routeRepo, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, busRepo, routeRepo, logger)
	bookingService := services.NewBookingService(bookingRepo, scheduleRepo, scheduleSeatRepo, logger)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, logger)
	feedbackService := services.NewFeedbackService(feedbackRepo, bookingRepo, busRepo, logger)
	adminService := services.NewAdminService(userRepo, reportRepo, adminActionRepo, logger)
	ticketService := services.NewTicketService(bookingRepo, scheduleRepo, routeRepo, busRepo, userRepo)
	logger.Info("Services initialized")

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	busHandler := handlers.NewBusHandler(busService)
	routeHandler := handlers.NewRouteHandler(routeService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, ticketService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminHandler := handlers.NewAdminHandler(adminService)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(middleware.RequestLogger(logger))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	auth := middleware.AuthMiddleware(jwtService)
	staffOnly := middleware.RequireRole(models.RoleOperator, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", auth, authHandler.Logout)
		}

		users := v1.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("/check-email", userHandler.CheckEmail)

			protected := users.Group("", auth)
			{
				protected.GET("", adminOnly, userHandler.GetAllUsers)
				protected.GET("/:id", userHandler.GetUserByID)
				protected.GET("/email/:email", adminOnly, userHandler.GetUserByEmail)
				protected.PUT("/:id", userHandler.UpdateUser)
				protected.DELETE("/:id", userHandler.DeactivateUser)
				protected.POST("/:id/reactivate", adminOnly, userHandler.ReactivateUser)
			}
		}

		buses := v1.Group("/buses", auth)
		{
			buses.POST("", staffOnly, busHandler.CreateBus)
			buses.GET("", busHandler.GetAllBuses)
			buses.GET("/:id", busHandler.GetBusByID)
			buses.GET("/:id/seats", busHandler.GetBusSeats)
			buses.GET("/operator/:operatorId", busHandler.GetBusesByOperator)
			buses.PUT("/:id", staffOnly, busHandler.UpdateBus)
			buses.DELETE("/:id", staffOnly, busHandler.DeleteBus)
		}

		routes := v1.Group("/routes", auth)
		{
			routes.POST("", staffOnly, routeHandler.CreateRoute)
			routes.GET("", routeHandler.GetAllRoutes)
			routes.GET("/:id", routeHandler.GetRouteByID)
			routes.PUT("/:id", staffOnly, routeHandler.UpdateRoute)
			routes.DELETE("/:id", staffOnly, routeHandler.DeleteRoute)
		}

		schedules := v1.Group("/schedules", auth)
		{
			schedules.POST("", staffOnly, scheduleHandler.CreateSchedule)
			schedules.GET("", scheduleHandler.GetAllSchedules)
			schedules.GET("/:id", scheduleHandler.GetScheduleByID)
			schedules.GET("/:id/seats", scheduleHandler.GetScheduleSeats)
			schedules.GET("/:id/reservations", staffOnly, scheduleHandler.GetScheduleReservations)
			schedules.GET("/route/:routeId", scheduleHandler.GetSchedulesByRoute)
			schedules.GET("/bus/:busId", scheduleHandler.GetSchedulesByBus)
			schedules.GET("/operator/:operatorId", scheduleHandler.GetSchedulesByOperator)
			schedules.PUT("/:id", staffOnly, scheduleHandler.UpdateSchedule)
			schedules.DELETE("/:id", staffOnly, scheduleHandler.DeleteSchedule)
		}

		bookings := v1.Group("/bookings", auth)
		{
			bookings.POST("/search", bookingHandler.SearchBuses)
			bookings.POST("", bookingHandler.BookTicket)
			bookings.GET("/:id", bookingHandler.GetBookingByID)
			bookings.GET("/:id/seat-log", bookingHandler.GetSeatLog)
			bookings.GET("/:id/ticket", bookingHandler.GetTicketPDF)
			bookings.GET("/user/:userId", bookingHandler.GetBookingsByUser)
			bookings.GET("/schedule/:scheduleId", staffOnly, bookingHandler.GetBookingsBySchedule)
			bookings.DELETE("/:id", bookingHandler.CancelBooking)
		}

		payments := v1.Group("/payments", auth)
		{
			payments.POST("", paymentHandler.InitiatePayment)
			payments.GET("/booking/:bookingId", paymentHandler.GetPaymentStatus)
			payments.POST("/booking/:bookingId/refund", paymentHandler.InitiateRefund)
		}

		notifications := v1.Group("/notifications", auth)
		{
			notifications.POST("", staffOnly, notificationHandler.SendNotification)
			notifications.GET("/user/:userId", notificationHandler.GetNotificationsByUser)
			notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
		}

		feedback := v1.Group("/feedback", auth)
		{
			feedback.POST("", feedbackHandler.AddFeedback)
			feedback.GET("", staffOnly, feedbackHandler.GetAllFeedbacks)
			feedback.GET("/:id", feedbackHandler.GetFeedbackByID)
			feedback.GET("/booking/:bookingId", feedbackHandler.GetFeedbacksByBooking)
			feedback.GET("/bus/:busId", feedbackHandler.GetFeedbacksByBus)
			feedback.PUT("/:id", feedbackHandler.UpdateFeedback)
		}

		admin := v1.Group("/admin", auth, adminOnly)
		{
			admin.POST("/assign-role", adminHandler.AssignRole)
			admin.POST("/reports", adminHandler.GenerateReports)
			admin.GET("/audit", adminHandler.GetAuditTrail)
		}
	}

	// Expired refresh tokens are dead rows; sweep them hourly.
	janitorDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := refreshTokenRepo.DeleteExpired(); err != nil {
					logger.WithError(err).Warn("Failed to sweep expired refresh tokens")
				} else if n > 0 {
					logger.WithField("deleted", n).Debug("Swept expired refresh tokens")
				}
			case <-janitorDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	close(janitorDone)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Forced shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
