// File: mentorhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"mentorhub/config"
	"mentorhub/cron"
	"mentorhub/database"
	availabilityRepoPkg "mentorhub/database/repository/availability"
	bookingRepoPkg "mentorhub/database/repository/booking"
	notificationRepoPkg "mentorhub/database/repository/notification"
	providerRepoPkg "mentorhub/database/repository/provider"
	userRepoPkg "mentorhub/database/repository/user"
	"mentorhub/handlers"
	"mentorhub/routes"
	"mentorhub/services/booking"
	"mentorhub/services/notification"
	"mentorhub/services/provider"
	"mentorhub/services/quota"
	"mentorhub/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	usrRepo := userRepoPkg.NewMongoUserRepo()
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()

	for _, ensure := range []func() error{
		provRepo.EnsureIndexes,
		usrRepo.EnsureIndexes,
		availRepo.EnsureIndexes,
		bkRepo.EnsureIndexes,
		notifRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Task queue client for confirmation delivery.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()

	// services.
	quotaLedger := &quota.Ledger{Users: usrRepo}
	notificationService := notification.NewAsynqNotificationService(asynqClient)

	bookingService := &booking.DefaultSessionBookingService{
		Providers:    provRepo,
		Availability: availRepo,
		Bookings:     bkRepo,
		Quota:        quotaLedger,
		Notifier:     notificationService,
	}

	providerService := &provider.DefaultProviderService{
		Repo:         provRepo,
		Availability: availRepo,
	}

	// Background workers.
	cron.InitConfirmationWorker(notifRepo)
	sweeper := cron.InitExpirySweep(availRepo)
	defer sweeper.Stop()

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Provider: handlers.NewProviderHandler(providerService, bkRepo, logger),
		User:     handlers.NewUserHandler(quotaLedger, notifRepo, logger),
	}
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
