package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesdesk/crm-api/internal/config"
	"github.com/salesdesk/crm-api/internal/database"
	"github.com/salesdesk/crm-api/internal/http/handler"
	"github.com/salesdesk/crm-api/internal/http/middleware"
	"github.com/salesdesk/crm-api/internal/http/router"
	"github.com/salesdesk/crm-api/internal/jobs"
	"github.com/salesdesk/crm-api/internal/logger"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/service"
	"github.com/salesdesk/crm-api/internal/storage"
	"go.uber.org/zap"
)

// @title SalesDesk CRM API
// @version 1.0
// @description CRM API for customers, offers, orders, products and the sales dashboard

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("path", cfg.Storage.LocalBasePath))

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tripRepo := repository.NewTripRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, log)
	offerService := service.NewOfferService(offerRepo, customerRepo, log)
	orderService := service.NewOrderService(orderRepo, customerRepo, log)
	taskService := service.NewTaskService(taskRepo, customerRepo, log)
	tripService := service.NewTripService(tripRepo, log)
	productService := service.NewProductService(productRepo, customerRepo, log)
	dashboardService := service.NewDashboardService(customerRepo, taskRepo, log)
	importService := service.NewImportService(customerRepo, productRepo, log)
	certificationService := service.NewCertificationService()
	fileService := service.NewFileService(fileStorage, customerRepo, offerRepo, orderRepo, db, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	maxUpload := cfg.Storage.MaxUploadSizeBytes()
	customerHandler := handler.NewCustomerHandler(customerService, log)
	offerHandler := handler.NewOfferHandler(offerService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	tripHandler := handler.NewTripHandler(tripService, log)
	productHandler := handler.NewProductHandler(productService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	importHandler := handler.NewImportHandler(importService, maxUpload, log)
	certificationHandler := handler.NewCertificationHandler(certificationService, log)
	fileHandler := handler.NewFileHandler(fileService, maxUpload, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		rateLimiter,
		customerHandler,
		offerHandler,
		orderHandler,
		taskHandler,
		tripHandler,
		productHandler,
		dashboardHandler,
		importHandler,
		certificationHandler,
		fileHandler,
	)

	// Start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)
		reminderJob := jobs.NewTaskReminderJob(taskRepo, log)
		if err := scheduler.AddJob("task-reminder", cfg.Jobs.TaskReminderCron, reminderJob.Run); err != nil {
			log.Error("Failed to register task reminder job", zap.Error(err))
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		log.Info("Server stopped")
	}

	return nil
}
