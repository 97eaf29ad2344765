package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-manager/internal/alerts"
	"fleet-manager/internal/config"
	"fleet-manager/internal/delivery/http/handler"
	"fleet-manager/internal/infrastructure/database/postgres"
	"fleet-manager/internal/logger"
	"fleet-manager/internal/middleware"
	"fleet-manager/internal/usecase/maintenance"
	"fleet-manager/internal/usecase/notification"
	"fleet-manager/internal/usecase/truck"
	"fleet-manager/internal/usecase/user"
	"fleet-manager/pkg/email"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware in order: request ID, logging, security headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	truckRepository := postgres.NewTruckRepository(db)
	driverRepository := postgres.NewDriverRepository(db)
	maintenanceRepository := postgres.NewMaintenanceRepository(db)
	notificationRepository := postgres.NewNotificationRepository(db)

	alertStore := postgres.NewAlertStore(db)
	engine := alerts.NewEngine(alertStore, cfg.Alerts)

	sender := email.NewSender(cfg.Email)

	userService := user.NewService(userRepository, driverRepository, truckRepository, notificationRepository, sender, cfg)
	userHandler := handler.NewUserHandler(userService)

	truckService := truck.NewService(truckRepository, maintenanceRepository, driverRepository, engine)
	truckHandler := handler.NewTruckHandler(truckService)

	maintenanceService := maintenance.NewService(maintenanceRepository, truckRepository, engine)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)

	notificationService := notification.NewService(notificationRepository, driverRepository, engine)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterAuthRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			truckHandler.RegisterRoutes(protected)
			maintenanceHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			// Fleet changes are for administrators and managers
			operators := protected.Group("")
			operators.Use(middleware.FleetOperators())
			{
				truckHandler.RegisterManagementRoutes(operators)
			}

			// Mechanics additionally maintain the maintenance history
			staff := protected.Group("")
			staff.Use(middleware.MaintenanceStaff())
			{
				maintenanceHandler.RegisterManagementRoutes(staff)
			}

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				notificationHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
