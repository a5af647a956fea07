// Package apiserver assembles the chi router and the HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/pantrybook/pantrybook/internal/infrastructure/http/handlers"
	custommw "github.com/pantrybook/pantrybook/internal/infrastructure/http/middleware"
	"github.com/pantrybook/pantrybook/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its router
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer builds the router and the HTTP server around it
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mw *custommw.Middleware,
	metrics *monitoring.Metrics,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	recipeHandler *handlers.RecipeHandler,
	catalogHandler *handlers.CatalogHandler,
) *Server {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(mw.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(60 * time.Second))
	router.Use(chimiddleware.Compress(5))
	router.Use(mw.Security)
	router.Use(mw.CORS)
	router.Use(mw.RateLimit)
	router.Use(mw.JSONOnly)

	router.Get("/health", healthHandler.Health)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/token", userHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)

			r.Get("/users/me", userHandler.Me)
			r.Patch("/users/me", userHandler.UpdateMe)

			r.Route("/recipes", func(r chi.Router) {
				r.Get("/", recipeHandler.List)
				r.Post("/", recipeHandler.Create)
				r.Get("/{id}", recipeHandler.Get)
				r.Put("/{id}", recipeHandler.Replace)
				r.Patch("/{id}", recipeHandler.Patch)
				r.Delete("/{id}", recipeHandler.Delete)
				r.Post("/{id}/upload-image", recipeHandler.UploadImage)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", catalogHandler.ListTags)
				r.Patch("/{id}", catalogHandler.UpdateTag)
				r.Delete("/{id}", catalogHandler.DeleteTag)
			})

			r.Route("/ingredients", func(r chi.Router) {
				r.Get("/", catalogHandler.ListIngredients)
				r.Patch("/{id}", catalogHandler.UpdateIngredient)
				r.Delete("/{id}", catalogHandler.DeleteIngredient)
			})
		})
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		config: cfg,
		logger: logger,
		server: httpServer,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving requests and blocks until the listener closes
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
