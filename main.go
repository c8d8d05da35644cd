package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realtalk/config"
	"realtalk/cron"
	"realtalk/database"
	"realtalk/database/repository"
	"realtalk/handlers"
	"realtalk/middleware"
	"realtalk/routes"
	"realtalk/services/availability"
	"realtalk/services/booking"
	"realtalk/services/live"
	"realtalk/services/notification"
	"realtalk/services/payment"
	"realtalk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	loc := config.Location()

	database.InitDB()
	utils.InitSelectionCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	availRepo := repository.NewMongoAvailabilityRepo()
	resRepo := repository.NewMongoReservationRepo()
	settingsRepo := repository.NewMongoSettingsRepo()

	if err := availRepo.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to ensure availability indexes", zap.Error(err))
	}
	if err := resRepo.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to ensure reservation indexes", zap.Error(err))
	}
	conflicts, err := resRepo.BackfillClaims(ctx)
	if err != nil {
		logger.Fatal("main: failed to backfill slot claims", zap.Error(err))
	}
	if conflicts > 0 {
		logger.Warn("main: stored reservations share slots", zap.Int("conflicts", conflicts))
	}

	// notification delivery.
	dispatcher := notification.NewQueueDispatcher(utils.QueueRedisOpt())
	emailSender := notification.NewEmailJSSender(
		config.AppConfig.EmailJSServiceID,
		config.AppConfig.EmailJSPublicKey,
		config.AppConfig.EmailJSPrivateKey,
	)
	var pusher notification.Pusher
	if fcm, err := notification.NewFCMPusher(utils.FCMClient, config.AppConfig.FCMAdminTopic); err != nil {
		logger.Warn("main: admin push disabled", zap.Error(err))
	} else {
		pusher = fcm
	}

	var payments payment.LinkCreator
	if config.AppConfig.StripeKey != "" {
		payments = payment.NewStripeCheckout(config.AppConfig.Currency, config.AppConfig.PublicBaseURL)
	}

	signer := utils.NewTokenSigner(config.AppConfig.JWTSecret)

	// services.
	bookingService := &booking.DefaultBookingService{
		Availability: availRepo,
		Reservations: resRepo,
		Prices:       settingsRepo,
		Selections:   booking.NewRedisSelectionStore(utils.GetSelectionCacheClient()),
		Notifier:     dispatcher,
		Payments:     payments,
		Tokens:       signer,
		Settings: booking.Settings{
			Location:        loc,
			DefaultPrice:    config.AppConfig.DefaultPrice,
			AdminEmail:      config.AppConfig.AdminEmail,
			PublicBaseURL:   config.AppConfig.PublicBaseURL,
			LinkTTL:         config.SelfServiceTokenTTL(),
			BookingTemplate: config.AppConfig.EmailJSBookingTemplate,
			ConfirmTemplate: config.AppConfig.EmailJSConfirmTemplate,
		},
		Logger: logger,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Repo:     availRepo,
		Prices:   settingsRepo,
		Location: loc,
		Logger:   logger,
	}

	hub := live.NewHub(bookingService, logger, availRepo.Watch, resRepo.Watch, settingsRepo.Watch)
	go hub.Run(ctx)

	worker := cron.NewWorker(utils.QueueRedisOpt(), cron.Deps{
		Email:        emailSender,
		Push:         pusher,
		Availability: availabilityService,
		Location:     loc,
		Logger:       logger,
	})
	if err := worker.Start(); err != nil {
		logger.Fatal("main: failed to start task worker", zap.Error(err))
	}

	utils.StartHealthMonitor(ctx, []*redis.Client{utils.GetSelectionCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		AdminAuth: middleware.AdminAuthMiddleware(
			config.AppConfig.AdminUID,
			middleware.SessionVerifier{Signer: signer},
			middleware.FirebaseVerifier{Client: utils.AuthClient},
		),
		ReservationAuth: middleware.ReservationTokenMiddleware(signer),
		Booking:         handlers.NewBookingHandler(bookingService),
		Reservation:     handlers.NewReservationHandler(bookingService),
		Admin:           handlers.NewAdminHandler(bookingService, availabilityService),
		Auth: &handlers.AuthHandler{
			Signer:       signer,
			AdminUID:     config.AppConfig.AdminUID,
			PasswordHash: config.AppConfig.AdminPasswordHash,
			SessionTTL:   12 * time.Hour,
		},
		Live: handlers.NewLiveHandler(hub),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	// Closing the hub's context ends open SSE streams before the server drains.
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	worker.Shutdown()
	if err := dispatcher.Close(); err != nil {
		logger.Warn("main: failed to close task queue", zap.Error(err))
	}
	_ = database.MongoClient.Disconnect(context.Background())

	logger.Sugar().Info("main: server stopped gracefully")
}
