package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/config"
	"github.com/salesdesk/crm-api/internal/database"
	"github.com/salesdesk/crm-api/internal/http/handler"
	"github.com/salesdesk/crm-api/internal/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg                  *config.Config
	logger               *zap.Logger
	db                   *gorm.DB
	rateLimiter          *middleware.RateLimiter
	customerHandler      *handler.CustomerHandler
	offerHandler         *handler.OfferHandler
	orderHandler         *handler.OrderHandler
	taskHandler          *handler.TaskHandler
	tripHandler          *handler.TripHandler
	productHandler       *handler.ProductHandler
	dashboardHandler     *handler.DashboardHandler
	importHandler        *handler.ImportHandler
	certificationHandler *handler.CertificationHandler
	fileHandler          *handler.FileHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	rateLimiter *middleware.RateLimiter,
	customerHandler *handler.CustomerHandler,
	offerHandler *handler.OfferHandler,
	orderHandler *handler.OrderHandler,
	taskHandler *handler.TaskHandler,
	tripHandler *handler.TripHandler,
	productHandler *handler.ProductHandler,
	dashboardHandler *handler.DashboardHandler,
	importHandler *handler.ImportHandler,
	certificationHandler *handler.CertificationHandler,
	fileHandler *handler.FileHandler,
) *Router {
	return &Router{
		cfg:                  cfg,
		logger:               logger,
		db:                   db,
		rateLimiter:          rateLimiter,
		customerHandler:      customerHandler,
		offerHandler:         offerHandler,
		orderHandler:         orderHandler,
		taskHandler:          taskHandler,
		tripHandler:          tripHandler,
		productHandler:       productHandler,
		dashboardHandler:     dashboardHandler,
		importHandler:        importHandler,
		certificationHandler: certificationHandler,
		fileHandler:          fileHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", rt.customerHandler.ListCustomers)
			r.Post("/", rt.customerHandler.CreateCustomer)

			r.Route("/{customerId}", func(r chi.Router) {
				r.Get("/", rt.customerHandler.GetCustomer)
				r.Put("/", rt.customerHandler.UpdateCustomer)
				r.Delete("/", rt.customerHandler.DeleteCustomer)
				r.Post("/contacts", rt.customerHandler.AddContact)
				r.Post("/notes", rt.customerHandler.AddNote)

				r.Route("/offers", func(r chi.Router) {
					r.Get("/", rt.offerHandler.ListOffers)
					r.Post("/", rt.offerHandler.CreateOffer)
					r.Get("/{id}", rt.offerHandler.GetOffer)
					r.Put("/{id}", rt.offerHandler.UpdateOffer)
					r.Delete("/{id}", rt.offerHandler.DeleteOffer)
					r.Put("/{id}/mark-ordered", rt.offerHandler.MarkOrdered)
					r.Post("/{id}/documents", rt.fileHandler.UploadOfferAttachment)
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", rt.orderHandler.ListOrders)
					r.Post("/", rt.orderHandler.CreateOrder)
					r.Get("/{id}", rt.orderHandler.GetOrder)
					r.Put("/{id}", rt.orderHandler.UpdateOrder)
					r.Delete("/{id}", rt.orderHandler.DeleteOrder)
					r.Post("/{id}/documents", rt.fileHandler.UploadOrderAttachment)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/", rt.taskHandler.ListCustomerTasks)
					r.Post("/", rt.taskHandler.CreateCustomerTask)
				})

				r.Route("/documents", func(r chi.Router) {
					r.Get("/", rt.fileHandler.ListDocuments)
					r.Post("/", rt.fileHandler.UploadDocument)
					r.Get("/{id}", rt.fileHandler.DownloadDocument)
					r.Delete("/{id}", rt.fileHandler.DeleteDocument)
				})
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.ListGlobalTasks)
			r.Post("/", rt.taskHandler.CreateGlobalTask)
			r.Get("/{id}", rt.taskHandler.GetTask)
			r.Put("/{id}", rt.taskHandler.UpdateTask)
			r.Put("/{id}/complete", rt.taskHandler.CompleteTask)
			r.Delete("/{id}", rt.taskHandler.DeleteTask)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", rt.tripHandler.ListTrips)
			r.Post("/", rt.tripHandler.CreateTrip)
			r.Get("/{id}", rt.tripHandler.GetTrip)
			r.Put("/{id}", rt.tripHandler.UpdateTrip)
			r.Delete("/{id}", rt.tripHandler.DeleteTrip)
		})

		r.Route("/product-families", func(r chi.Router) {
			r.Get("/", rt.productHandler.ListFamilies)
			r.Post("/", rt.productHandler.CreateFamily)
			r.Get("/{id}", rt.productHandler.GetFamily)
			r.Put("/{id}", rt.productHandler.UpdateFamily)
			r.Delete("/{id}", rt.productHandler.DeleteFamily)
			r.Post("/{id}/products", rt.productHandler.CreateProduct)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/{id}", rt.productHandler.GetProduct)
			r.Put("/{id}", rt.productHandler.UpdateProduct)
			r.Delete("/{id}", rt.productHandler.DeleteProduct)
			r.Get("/{id}/prices", rt.productHandler.ListCustomerPrices)
			r.Put("/{id}/prices", rt.productHandler.SetCustomerPrice)
			r.Delete("/{id}/prices/{customerId}", rt.productHandler.DeleteCustomerPrice)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", rt.dashboardHandler.GetSnapshot)
			r.Get("/orders", rt.dashboardHandler.GetOrders)
		})

		r.Post("/import", rt.importHandler.Import)
		r.Get("/certification/price", rt.certificationHandler.GetPrice)
	})

	return r
}
