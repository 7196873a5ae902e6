package router

import (
	"net/http"
	"time"

	"eventreg/config"
	"eventreg/internal/handler"
	"eventreg/internal/middleware"
	"eventreg/internal/repository"
	"eventreg/internal/service"
	"eventreg/pkg/payment"
	"eventreg/pkg/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the collaborators that differ between production and tests.
// The caller owns Limiter and stops it on shutdown.
type Deps struct {
	Gateway  payment.Provider
	Notifier service.Notifier
	Limiter  *middleware.InMemoryRateLimiter
	Log      *zerolog.Logger
}

func Setup(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.RegisterGin()
	log := deps.Log

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	limiter := middleware.RateLimit(deps.Limiter)

	// Repositories
	attendeeRepo := repository.NewAttendeeRepository(db)
	donorRepo := repository.NewDonorRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	webhookRepo := repository.NewWebhookEventRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	reg := cfg.Registration
	paymentSvc := service.NewPaymentService(paymentRepo, attendeeRepo, donorRepo, deps.Gateway, cfg.Paystack.CallbackURL, reg.ReferencePrefix, log)
	registrationSvc := service.NewRegistrationService(db, attendeeRepo, settingRepo, paymentSvc, reg.FeeMinor, log)
	donationSvc := service.NewDonationService(donorRepo, paymentRepo, paymentSvc, reg.MinorPerMajor, log)
	ids := service.NewRegistrationIDAllocator(reg.IDPrefix, attendeeRepo, sequenceRepo)
	webhookSvc := service.NewWebhookService(db, paymentRepo, attendeeRepo, donorRepo, webhookRepo, ids, deps.Notifier, cfg.Paystack.SecretKey, log)

	// Handlers
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, log)
	donationHandler := handler.NewDonationHandler(donationSvc, log)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, log)
	webhookHandler := handler.NewPaymentWebhookHandler(webhookSvc, log)
	adminHandler := handler.NewAdminHandler(adminRepo, settingRepo, registrationSvc, log)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, webhookRepo, log)

	r.GET("/health", func(c *gin.Context) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/registrations", limiter, registrationHandler.Register)
		api.POST("/registrations/check-email", limiter, registrationHandler.CheckEmail)
		api.POST("/donations", limiter, donationHandler.Create)
		api.POST("/payments/retry", limiter, paymentHandler.Retry)
		api.POST("/webhooks/paystack", webhookHandler.Handle)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(&cfg.JWT), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/attendees", adminHandler.ListAttendees)
			admin.GET("/attendees/:id", adminHandler.GetAttendee)
			admin.GET("/payments", paymentHandler.List)
			admin.GET("/payments/:id", paymentHandler.Get)
			admin.GET("/donations", donationHandler.ListDonations)
			admin.GET("/donors", donationHandler.ListDonors)
			admin.GET("/donors/:id", donationHandler.GetDonor)
			admin.PUT("/donors/:id", donationHandler.UpdateDonor)
			admin.DELETE("/donors/:id", donationHandler.DeleteDonor)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
			admin.GET("/notifications", notificationHandler.List)
			admin.GET("/webhook-events", notificationHandler.WebhookEvents)
		}
	}

	return r
}
