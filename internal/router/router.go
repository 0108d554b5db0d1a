// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/petpal/petpal-backend/internal/config"
	"github.com/petpal/petpal-backend/internal/handlers"
	"github.com/petpal/petpal-backend/internal/middleware"
	"github.com/petpal/petpal-backend/internal/services"
	"github.com/petpal/petpal-backend/internal/utils"
)

func Initialize(db *gorm.DB, cache *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	petService := services.NewPetService(db, cache, time.Duration(cfg.Redis.CacheTTL)*time.Second)
	applicationService := services.NewApplicationService(db, notificationService)
	adoptionService := services.NewAdoptionService(db)
	verificationService := services.NewVerificationService(db)
	lostPetService := services.NewLostPetService(db, notificationService)
	reminderService := services.NewReminderService(db)
	careService := services.NewCareService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	petHandler := handlers.NewPetHandler(petService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, adoptionService)
	lostPetHandler := handlers.NewLostPetHandler(lostPetService)
	careHandler := handlers.NewCareHandler(reminderService, careService)
	adminHandler := handlers.NewAdminHandler(adminService, applicationService, verificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Pet catalog is browsable without an account; admins see extra filters.
	pets := v1.Group("/pets")
	pets.Use(middleware.OptionalAuth())
	{
		pets.GET("", petHandler.SearchPets)
		pets.GET("/:id", petHandler.GetPet)
	}

	// Lost pet tracking is public by code
	v1.GET("/lost-pets/track/:code", lostPetHandler.TrackReport)
	v1.GET("/lost-pets", lostPetHandler.SearchReports)

	// Authenticated routes
	authenticated := v1.Group("")
	authenticated.Use(middleware.AuthRequired())
	{
		authenticated.POST("/auth/logout", authHandler.Logout)
		authenticated.GET("/auth/profile", authHandler.GetProfile)
		authenticated.PUT("/auth/profile", authHandler.UpdateProfile)

		authenticated.POST("/applications", applicationHandler.SubmitApplication)
		authenticated.POST("/applications/validate-step", applicationHandler.ValidateStep)
		authenticated.GET("/applications", applicationHandler.ListMyApplications)
		authenticated.GET("/applications/:id", applicationHandler.GetApplication)

		authenticated.GET("/adoptions", applicationHandler.ListMyAdoptions)
		authenticated.GET("/adoptions/:id", applicationHandler.GetAdoptionEntry)

		authenticated.POST("/lost-pets", lostPetHandler.CreateReport)
		authenticated.PUT("/lost-pets/:id/status", lostPetHandler.UpdateReportStatus)

		authenticated.POST("/reminders", careHandler.CreateReminder)
		authenticated.GET("/reminders", careHandler.ListReminders)
		authenticated.PUT("/reminders/:id/complete", careHandler.CompleteReminder)
		authenticated.DELETE("/reminders/:id", careHandler.DeleteReminder)

		authenticated.POST("/care-entries", careHandler.CreateCareEntry)
		authenticated.GET("/care-entries", careHandler.ListCareEntries)
		authenticated.DELETE("/care-entries/:id", careHandler.DeleteCareEntry)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)

		admin.POST("/pets", petHandler.CreatePet)
		admin.PUT("/pets/:id", petHandler.UpdatePet)
		admin.PUT("/pets/:id/status", petHandler.UpdatePetStatus)
		admin.DELETE("/pets/:id", petHandler.DeletePet)

		admin.GET("/applications", adminHandler.ListApplications)
		admin.PUT("/applications/:id/status", adminHandler.UpdateApplicationStatus)
		admin.POST("/applications/:id/retry-notification", adminHandler.RetryNotification)
		admin.POST("/applications/:id/finalize", adminHandler.FinalizeAdoption)

		admin.POST("/verifications", adminHandler.CreateVerification)
		admin.GET("/verifications", adminHandler.ListVerifications)
		admin.GET("/verifications/:id", adminHandler.GetVerification)
		admin.PUT("/verifications/:id/assessments", adminHandler.UpdateVerificationAssessments)
		admin.PUT("/verifications/:id/status", adminHandler.UpdateVerificationStatus)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)

		admin.GET("/notifications", adminHandler.ListNotifications)
		admin.PUT("/notifications/:id/read", adminHandler.MarkNotificationRead)

		admin.GET("/audit-logs", adminHandler.ListAuditLogs)
	}

	return r
}
