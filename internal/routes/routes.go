package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/clock"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Deps reúne o que o main já montou e cujo ciclo de vida ele controla.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *slog.Logger
	Clock    clock.Clock
	Location *time.Location

	Audit     ucAppointment.Auditor
	Notifier  ucAppointment.Notifier
	Reminders ucAppointment.ReminderScheduler
	Emails    handlers.DomainChecker

	// Images nil desliga o upload de fotos.
	Images handlers.ImageStore
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(logging.Middleware(d.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Location)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		availabilityUC,
		d.Audit,
		d.Notifier,
		d.Clock,
		d.Location,
		d.Log,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(
		appointmentRepo,
		d.Reminders,
		d.Location,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.Audit,
		d.Clock,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		d.Reminders,
		d.Audit,
		d.Notifier,
		d.Clock,
		d.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Emails, d.Audit)
	meHandler := handlers.NewMeHandler(d.DB)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Images, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	reviewHandler := handlers.NewReviewHandler(d.DB, d.Audit)
	favoriteHandler := handlers.NewFavoriteHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)

	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC,
		createAppointmentUC,
		listAppointmentsUC,
		cancelAppointmentUC,
		updateStatusUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PÚBLICA
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/slots", appointmentHandler.Slots)

		public := api.Group("/")
		public.Use(middleware.OptionalAuth(d.Config))
		{
			public.GET("/barbers", barberHandler.List)
			public.GET("/barbers/:id", barberHandler.Get)
			public.GET("/barbers/:id/services", serviceHandler.ListByBarber)
			public.GET("/barbers/:id/reviews", reviewHandler.ListByBarber)
		}

		// ------------------------------
		// 🔐 AUTENTICADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/barbers/:id/availability", appointmentHandler.Availability)
			secured.POST("/barbers/:id/reviews", reviewHandler.Create)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.PUT("/me/push-token", meHandler.SavePushToken)

			secured.GET("/me/favorites", favoriteHandler.List)
			secured.POST("/me/favorites/:barberId", favoriteHandler.Toggle)
		}

		// ------------------------------
		// 🛠️ ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Config), middleware.RequireAdmin())
		{
			admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			admin.POST("/barbers", barberHandler.Create)
			admin.PATCH("/barbers/:id", barberHandler.Update)
			admin.DELETE("/barbers/:id", barberHandler.Delete)
			admin.POST("/barbers/:id/image", barberHandler.UploadImage)

			admin.POST("/barbers/:id/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.DELETE("/reviews/:id", reviewHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
