package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yaxyebile/admin/internal/infrastructure/config"
	"github.com/yaxyebile/admin/internal/infrastructure/http/handler"
	"github.com/yaxyebile/admin/internal/infrastructure/http/middleware"
	"github.com/yaxyebile/admin/internal/infrastructure/telemetry"
)

// Server represents the gateway HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	config    *config.ServerConfig
	catalog   *handler.CatalogHandler
	cart      *handler.CartHandler
	auth      *handler.AuthHandler
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	catalog *handler.CatalogHandler,
	cart *handler.CartHandler,
	auth *handler.AuthHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		catalog:   catalog,
		cart:      cart,
		auth:      auth,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)

	// Add the HTTP route to context so all logs include it automatically
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.telemetry.MeterProvider.Meter("storefront-admin-api")
	s.router.Use(middleware.ActiveRequests(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", s.catalog.ListProducts)
		r.Post("/", s.catalog.CreateProduct)
		r.Get("/category/{slug}", s.catalog.ProductsByCategory)
		r.Get("/{id}", s.catalog.GetProduct)
		r.Put("/{id}", s.catalog.UpdateProduct)
		r.Delete("/{id}", s.catalog.DeleteProduct)
	})

	s.router.Route("/categories", func(r chi.Router) {
		r.Get("/", s.catalog.ListCategories)
		r.Post("/", s.catalog.CreateCategory)
		r.Put("/{id}", s.catalog.UpdateCategory)
		r.Delete("/{id}", s.catalog.DeleteCategory)
	})

	s.router.Route("/cart", func(r chi.Router) {
		r.Get("/", s.cart.GetCart)
		r.Delete("/", s.cart.ClearCart)
		r.Post("/items", s.cart.AddItem)
		r.Put("/items/{productID}", s.cart.UpdateItem)
		r.Delete("/items/{productID}", s.cart.RemoveItem)
		r.Post("/checkout", s.cart.Checkout)
	})

	s.router.Route("/orders", func(r chi.Router) {
		r.Get("/", s.cart.ListOrders)
		r.Post("/", s.cart.SubmitOrder)
		r.Get("/user/{userID}", s.cart.ListUserOrders)
		r.Patch("/{id}/status", s.cart.UpdateOrderStatus)
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.auth.Register)
		r.Post("/login", s.auth.Login)
	})

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Router returns the configured route tree
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	s.logger.Info("Starting HTTP server",
		slog.String("address", addr),
	)

	// Wrap the whole router with otelhttp for server-side traces and the
	// standard HTTP metrics
	wrapped := otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			routePattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					routePattern = pattern
				}
			}
			return []attribute.KeyValue{
				attribute.String("http.route", routePattern),
			}
		}),
	)

	s.server = &http.Server{Addr: addr, Handler: wrapped}

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
