// File: movebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movebook/config"
	"movebook/cron"
	"movebook/database"
	appointmentRepo "movebook/database/repository/appointment"
	"movebook/handlers"
	"movebook/middleware"
	"movebook/routes"
	"movebook/services/booking"
	"movebook/services/calendar"
	"movebook/services/notification"
	"movebook/services/pricing"
	"movebook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}

	// Appointment store: Mongo when a database URL is configured, otherwise
	// the single-writer file store.
	var repo appointmentRepo.AppointmentRepository
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		repo = appointmentRepo.NewMongoAppointmentRepo()
	} else {
		repo, err = appointmentRepo.NewFileAppointmentRepo(config.AppConfig.StoreFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open appointment store: %v", err)
		}
	}

	// Calendar providers are peers; each is configured independently and a
	// missing configuration simply leaves that provider out of the fan-out.
	var providers []calendar.Provider
	if config.AppConfig.GoogleCredentialsFile != "" {
		gp, err := calendar.NewGoogleProvider(
			context.Background(),
			config.AppConfig.GoogleCredentialsFile,
			config.AppConfig.GoogleCalendarID,
			loc,
			config.AppConfig.SlotMinutes,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar provider: %v", err)
		}
		providers = append(providers, gp)
	}
	if config.AppConfig.CalDAVURL != "" {
		providers = append(providers, calendar.NewCalDAVProvider(
			config.AppConfig.CalDAVURL,
			config.AppConfig.CalDAVUser,
			config.AppConfig.CalDAVPassword,
			config.AppConfig.MailFrom,
			loc,
			config.AppConfig.SlotMinutes,
		))
	}
	syncer := calendar.NewSyncer(providers, logger)

	notificationService := notification.NewDefaultNotificationService(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.MailFrom,
		loc,
		config.AppConfig.SlotMinutes,
	)

	bookingService := &booking.DefaultBookingService{
		Repo:            repo,
		Syncer:          syncer,
		NotificationSvc: notificationService,
		Rules: booking.SlotRules{
			Open:        config.AppConfig.BusinessOpen,
			Close:       config.AppConfig.BusinessClose,
			SlotMinutes: config.AppConfig.SlotMinutes,
			HorizonDays: config.AppConfig.BookingHorizonDays,
			Location:    loc,
		},
		CapacityFor: config.CapacityFor,
		Logger:      logger,
	}

	pricingCatalog := pricing.NewDefaultCatalogService(
		config.AppConfig.PricingSourceURL,
		utils.GetPricingCacheClient(),
		time.Duration(config.AppConfig.PricingRefreshMinutes)*time.Minute,
		logger,
	)

	// Background worker for manually triggered calendar resyncs.
	cron.InitResyncWorker(bookingService)
	taskClient := cron.NewTaskClient()
	defer taskClient.Close()

	bookingHandler := handlers.NewBookingHandler(bookingService, taskClient)
	pricingHandler := handlers.NewPricingHandler(pricingCatalog)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.Register(router, bookingHandler, pricingHandler)

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
