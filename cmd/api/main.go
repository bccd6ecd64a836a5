package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bookwise/internal/cache"
	"bookwise/internal/config"
	"bookwise/internal/database"
	"bookwise/internal/middleware"
	"bookwise/internal/modules/availability"
	"bookwise/internal/modules/booking"
	"bookwise/internal/modules/business"
	"bookwise/internal/modules/notification"
	"bookwise/internal/modules/payment"
	jwtsvc "bookwise/internal/pkg/jwt"
	"bookwise/internal/provider"
	"bookwise/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	webhookRepo := repository.NewWebhookEventRepository(db)
	blackoutRepo := repository.NewBlackoutRepository(db)
	hoursRepo := repository.NewWorkingHoursRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	invalidator := cache.NewLogInvalidator()
	notifService := notification.NewService(outboxRepo, log.Printf)
	providerClient := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderTimeout)

	conflictDetector := booking.NewConflictDetector(bookingRepo, cfg.MaxBookingDuration)
	refundProcessor := payment.NewRefundProcessor(paymentRepo, providerClient, log.Printf)

	bookingService := booking.NewService(
		bookingRepo,
		catalogRepo,
		blackoutRepo,
		paymentRepo,
		conflictDetector,
		refundProcessor,
		notifService,
		invalidator,
		cfg,
		log.Printf,
	)
	bookingHandler := booking.NewHandler(bookingService)

	availabilityService := availability.NewService(bookingRepo, blackoutRepo, hoursRepo, cfg)
	availabilityHandler := availability.NewHandler(availabilityService)

	businessService := business.NewService(catalogRepo, log.Printf)
	businessHandler := business.NewHandler(businessService)

	reconciler := payment.NewReconciler(paymentRepo, webhookRepo, bookingRepo, notifService, invalidator, log.Printf)
	webhookValidator := payment.NewWebhookValidator(cfg.WebhookSecret)
	paymentHandler := payment.NewHandler(reconciler, webhookValidator, log.Printf)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			businessHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
