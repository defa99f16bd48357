package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/snackcounter/api/internal/config"
	"github.com/snackcounter/api/internal/database"
	"github.com/snackcounter/api/internal/handler"
	mw "github.com/snackcounter/api/internal/middleware"
	"github.com/snackcounter/api/internal/service"
)

// New creates a Chi router with all application routes wired up.
// Till-facing routes are public; mutations of archived data need a token,
// and closing maintenance and staff accounts need the OWNER role.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, cal *service.Calendar) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Services
	orderService := service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}, cal)
	paymentService := service.NewPaymentService(pool, func(db database.DBTX) service.PaymentStore {
		return database.New(db)
	}, cal)
	closingService := service.NewClosingService(pool, func(db database.DBTX) service.ClosingStore {
		return database.New(db)
	})
	costService := service.NewCostService(pool, func(db database.DBTX) service.CostStore {
		return database.New(db)
	})
	stockService := service.NewStockService(pool, func(db database.DBTX) service.StockStore {
		return database.New(db)
	}, cal)
	reportService := service.NewReportService(pool, func(db database.DBTX) service.ReportStore {
		return database.New(db)
	}, costService)

	// Handlers
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	orderHandler := handler.NewOrderHandler(orderService, cal)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	closingHandler := handler.NewClosingHandler(closingService, cal)
	productCostHandler := handler.NewProductCostHandler(costService)
	stockHandler := handler.NewStockHandler(stockService, costService)
	reportsHandler := handler.NewReportsHandler(reportService, cal)
	userHandler := handler.NewUserHandler(queries)

	authenticate := mw.Authenticate(cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)

		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				orderHandler.RegisterProtectedRoutes(r)
			})

			// Partial payments (nested under orders)
			r.Route("/{id}/partial-payment", paymentHandler.RegisterRoutes)
		})

		r.Route("/product-costs", func(r chi.Router) {
			productCostHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				productCostHandler.RegisterProtectedRoutes(r)
			})
		})

		r.Route("/stock-items", func(r chi.Router) {
			stockHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				stockHandler.RegisterProtectedRoutes(r)
			})
		})

		r.Route("/reports", reportsHandler.RegisterRoutes)

		closingHandler.RegisterRoutes(r)

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			closingHandler.RegisterProtectedRoutes(r)

			// Owner-only routes
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole("OWNER"))
				closingHandler.RegisterOwnerRoutes(r)
				r.Route("/users", userHandler.RegisterRoutes)
			})
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
