// File: laundrify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundrify/config"
	"laundrify/cron"
	"laundrify/gateway"
	"laundrify/handlers"
	"laundrify/middleware"
	"laundrify/routes"
	"laundrify/services/admin"
	"laundrify/services/cart"
	"laundrify/services/catalog"
	"laundrify/services/feedback"
	"laundrify/services/geocode"
	"laundrify/services/notification"
	"laundrify/services/order"
	"laundrify/services/payment"
	"laundrify/services/session"
	"laundrify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)
	stripe.Key = config.AppConfig.StripeKey

	// gateways.
	apiClient := gateway.NewClient()
	userGateway := gateway.NewHTTPUserGateway(apiClient)
	cartGateway := gateway.NewHTTPCartGateway(apiClient)
	orderGateway := gateway.NewHTTPOrderGateway(apiClient)
	paymentGateway := gateway.NewHTTPPaymentGateway(apiClient)
	catalogGateway := gateway.NewHTTPCatalogGateway(apiClient)
	feedbackGateway := gateway.NewHTTPFeedbackGateway(apiClient)
	adminGateway := gateway.NewHTTPAdminGateway(apiClient)

	// services.
	sessionService := &session.DefaultSessionService{
		Users:  userGateway,
		Store:  utils.GetSessionCacheClient(),
		Logger: logger,
	}

	cartService := cart.NewDefaultCartService(cartGateway)

	geocodeResolver := geocode.NewNominatimResolver(
		config.AppConfig.GeocoderURL,
		utils.GetCacheClient(),
		logger,
	)
	geofence := order.NewGeofenceValidator()

	reminderScheduler := cron.NewAsynqReminderScheduler()
	orderService := &order.DefaultOrderService{
		Gateway:   orderGateway,
		Users:     userGateway,
		Reminders: reminderScheduler,
		Logger:    logger,
	}

	paymentService := &payment.DefaultPaymentService{
		Tokenizer: &payment.StripeTokenizer{},
		Gateway:   paymentGateway,
		Logger:    logger,
	}

	catalogService := &catalog.DefaultCatalogService{
		Gateway: catalogGateway,
		Cache:   utils.GetCacheClient(),
		Logger:  logger,
	}

	feedbackService := &feedback.DefaultFeedbackService{
		Gateway: feedbackGateway,
	}

	adminService := &admin.DefaultAdminService{
		Gateway: adminGateway,
		Users:   userGateway,
	}

	notificationService := notification.NewFCMNotificationService(utils.FCMClient, logger)

	// handlers.
	handlerSet := &routes.HandlerSet{
		Sessions: handlers.NewSessionHandler(sessionService),
		Carts:    handlers.NewCartHandler(cartService),
		Orders: handlers.NewOrderHandler(
			orderService,
			cartService,
			geocodeResolver,
			geofence,
			utils.GetCacheClient(),
			logger,
		),
		Payments: handlers.NewPaymentHandler(paymentService, paymentGateway, utils.GetCacheClient(), logger),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Admin:    handlers.NewAdminHandler(adminService),
		Geocode:  handlers.NewGeocodeHandler(geocodeResolver),
		Storage:  handlers.NewStorageHandler(cloudinaryStorageService),

		SessionService: sessionService,
	}

	routes.RegisterHealthRoute(router)
	routes.RegisterUserRoutes(router, handlerSet)
	routes.RegisterCatalogRoutes(router, handlerSet)
	routes.RegisterCartRoutes(router, handlerSet)
	routes.RegisterOrderRoutes(router, handlerSet)
	routes.RegisterPaymentRoutes(router, handlerSet)
	routes.RegisterFeedbackRoutes(router, handlerSet)
	routes.RegisterAdminRoutes(router, handlerSet)
	routes.RegisterGeocodeRoutes(router, handlerSet)

	// Background worker for pickup reminders and catalog refresh.
	go cron.InitReminderWorker(notificationService, catalogService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
