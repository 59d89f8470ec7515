package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barbershop-server/internal/config"
	"barbershop-server/internal/handlers"
	"barbershop-server/internal/middleware"
	"barbershop-server/internal/models"
	"barbershop-server/internal/notify"
	"barbershop-server/internal/repository"
	"barbershop-server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// The booking engine owns all appointment state; handlers never write
	// appointments through gorm directly.
	store := repository.NewStore(db)
	engine := scheduling.NewEngine(store, store, store, notify.NewLogNotifier(), cfg.Booking.GridStepMinutes)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, engine)
	reportHandler := handlers.NewReportHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// The client booking flow: browse the catalogue and the team, query
		// availability, book, cancel. No account required; walk-in clients
		// book with contact info only.
		public.GET("/services", serviceHandler.GetServices)
		public.GET("/professionals", professionalHandler.GetProfessionals)
		public.GET("/professionals/:id", professionalHandler.GetProfessionalByID)
		public.GET("/professionals/:id/slots", appointmentHandler.GetSlots)
		public.GET("/professionals/:id/availability", appointmentHandler.GetDayAvailability)
		public.POST("/appointments", appointmentHandler.CreateAppointment)
		public.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
		public.POST("/appointments/:id/cancel", appointmentHandler.CancelAppointment)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Service catalogue management (admin-only)
		serviceRoutes := private.Group("/services")
		serviceRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			serviceRoutes.POST("", serviceHandler.CreateService)
			serviceRoutes.GET("/:id", serviceHandler.GetServiceByID)
			serviceRoutes.PUT("/:id", serviceHandler.UpdateService)
			serviceRoutes.DELETE("/:id", serviceHandler.DeactivateService)
		}

		// Professional profiles and schedules
		profRoutes := private.Group("/professionals")
		{
			adminProf := profRoutes.Group("")
			adminProf.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminProf.POST("", professionalHandler.CreateProfessional)
				adminProf.PUT("/:id", professionalHandler.UpdateProfessional)
				adminProf.PATCH("/vacations/:vacationId", professionalHandler.SetVacationStatus)
				adminProf.DELETE("/absences/:absenceId", professionalHandler.DeleteAbsence)
				adminProf.DELETE("/special-schedules/:specialId", professionalHandler.DeleteSpecialSchedule)
			}

			// Professionals manage their own schedule; admins manage any.
			staffProf := profRoutes.Group("")
			staffProf.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleProfessional))
			{
				staffProf.PUT("/:id/working-hours", professionalHandler.PutWorkingHours)
				staffProf.POST("/:id/vacations", professionalHandler.CreateVacation)
				staffProf.POST("/:id/absences", professionalHandler.CreateAbsence)
				staffProf.POST("/:id/special-schedules", professionalHandler.CreateSpecialSchedule)
			}
		}

		// Appointment back-office
		appointmentRoutes := private.Group("/appointments")
		appointmentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleProfessional))
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/reschedule", appointmentHandler.RescheduleAppointment)
		}

		// Reporting dashboards (admin-only)
		reportRoutes := private.Group("/reports")
		reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			reportRoutes.GET("/summary", reportHandler.GetSummary)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
