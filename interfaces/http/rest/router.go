package rest

import (
	"net/http"

	"orgchart-backend/application/commands/bus"
	"orgchart-backend/application/ports"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/infrastructure/config"
	"orgchart-backend/interfaces/http/rest/handlers"
	"orgchart-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	config     *config.Config
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	notifier ports.Notifier,
	logger *zap.Logger,
) *Router {
	return &Router{
		config:     cfg,
		commandBus: commandBus,
		queryBus:   queryBus,
		notifier:   notifier,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.config))
		r.Use(middleware.CircuitBreaker(middleware.DefaultCircuitBreakerConfig("api"), rt.logger))

		// Employee endpoints
		r.Route("/employees", func(r chi.Router) {
			employeeHandler := handlers.NewEmployeeHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", employeeHandler.ListEmployees)
			r.Get("/{employeeID}", employeeHandler.GetEmployee)
			r.Patch("/{employeeID}/manager", employeeHandler.ReparentEmployee)
		})

		// Team listing for the filter dropdown
		r.Get("/teams", handlers.NewEmployeeHandler(rt.commandBus, rt.queryBus, rt.logger).ListTeams)

		// Chart endpoint for visualization
		r.Get("/chart", handlers.NewChartHandler(rt.queryBus, rt.logger).GetChart)

		// Notice feed
		r.Get("/notices", handlers.NewNoticeHandler(rt.notifier, rt.logger).ListNotices)

		// Hierarchy lifecycle
		r.Post("/hierarchy/reload", handlers.NewHierarchyHandler(rt.commandBus, rt.logger).ReloadHierarchy)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
