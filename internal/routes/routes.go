package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  ucAppointment.SlotCache
	Audit  *audit.Dispatcher
	Log    *zap.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	cfg := deps.Config
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)

	res := handlers.Resources{
		DB:    deps.DB,
		Cache: deps.Cache,
		Audit: deps.Audit,
		Log:   log,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	barberHandler := handlers.NewBarberHandler(res)
	serviceHandler := handlers.NewServiceHandler(res)
	workingHoursHandler := handlers.NewWorkingHoursHandler(res)
	nonWorkingDayHandler := handlers.NewNonWorkingDayHandler(res)
	configHandler := handlers.NewConfigHandler(res)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)
	initHandler := handlers.NewInitHandler(
		seed.NewSeeder(deps.DB, cfg.InitSecret, log),
		deps.Audit,
		log,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.Deps{
			Repo:  appointmentRepo,
			Audit: deps.Audit,
			Cache: deps.Cache,
			Log:   log,
		},
		handlers.SlotSettings{
			Step:            cfg.SlotIntervalMinutes,
			DefaultDuration: cfg.DefaultServiceDuration,
		},
	)

	admin := middleware.AdminAuth(cfg)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst, log).Middleware()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BARBERS
		// ------------------------------
		barbers := api.Group("/barbers")
		{
			barbers.GET("", barberHandler.List)
			barbers.GET("/:id", barberHandler.Get)
			barbers.POST("", admin, barberHandler.Create)
			barbers.PUT("/:id", admin, barberHandler.Update)
			barbers.DELETE("/:id", admin, barberHandler.Delete)
		}

		// ------------------------------
		// SERVICES
		// ------------------------------
		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/:id", serviceHandler.Get)
			services.POST("", admin, serviceHandler.Create)
			services.PUT("/:id", admin, serviceHandler.Update)
			services.DELETE("/:id", admin, serviceHandler.Delete)
		}

		// ------------------------------
		// WORKING HOURS
		// ------------------------------
		hours := api.Group("/working-hours")
		{
			hours.GET("", workingHoursHandler.List)
			hours.GET("/barber/:barberId", workingHoursHandler.ListByBarber)
			hours.POST("", admin, workingHoursHandler.Create)
			hours.POST("/batch", admin, workingHoursHandler.Batch)
			hours.PUT("/:id", admin, workingHoursHandler.Update)
			hours.DELETE("/:id", admin, workingHoursHandler.Delete)
		}

		// ------------------------------
		// NON WORKING DAYS
		// ------------------------------
		days := api.Group("/non-working-days")
		{
			days.GET("", nonWorkingDayHandler.List)
			days.POST("", admin, nonWorkingDayHandler.Create)
			days.PUT("/:id", admin, nonWorkingDayHandler.Update)
			days.DELETE("/:id", admin, nonWorkingDayHandler.Delete)
		}

		// ------------------------------
		// SETTINGS
		// ------------------------------
		settings := api.Group("/config")
		{
			settings.GET("", configHandler.List)
			settings.GET("/:key", configHandler.Get)
			settings.POST("", admin, configHandler.Upsert)
			settings.PUT("/:key", admin, configHandler.Update)
			settings.DELETE("/:key", admin, configHandler.Delete)
		}

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			appointments.GET("/available-slots/:barberId", appointmentHandler.AvailableSlots)
			appointments.POST("", limiter, appointmentHandler.Create)

			appointments.GET("", admin, appointmentHandler.List)
			appointments.GET("/:id", admin, appointmentHandler.Get)
			appointments.PUT("/:id", admin, appointmentHandler.Update)
			appointments.PATCH("/:id/status", admin, appointmentHandler.UpdateStatus)
			appointments.DELETE("/:id", admin, appointmentHandler.Delete)
		}

		api.GET("/audit-logs", admin, auditLogsHandler.List)

		// ------------------------------
		// INIT
		// ------------------------------
		api.GET("/init/status", initHandler.Status)
		api.POST("/init/seed", limiter, initHandler.Seed)
	}
}
