// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	listapp "github.com/tastebite/platform/internal/application/shoppinglist"
	userapp "github.com/tastebite/platform/internal/application/user"
	"github.com/tastebite/platform/internal/infrastructure/config"
	"github.com/tastebite/platform/internal/infrastructure/http/handlers"
	"github.com/tastebite/platform/internal/infrastructure/http/middleware"
	"github.com/tastebite/platform/internal/infrastructure/security"
	"github.com/tastebite/platform/internal/ports/inbound"
)

// Server is the HTTP server serving the JSON API.
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *chi.Mux
}

// New creates a configured API server.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	recipeService inbound.RecipeService,
	userService *userapp.Service,
	listService *listapp.Service,
	authService *security.AuthService,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger.Named("apiserver"),
	}

	s.router = s.setupRoutes(recipeService, userService, listService, authService)
	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}
	return s
}

func (s *Server) setupRoutes(
	recipeService inbound.RecipeService,
	userService *userapp.Service,
	listService *listapp.Service,
	authService *security.AuthService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config))
	r.Use(middleware.RateLimit(s.config))
	r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	r.Use(chimiddleware.Compress(5))

	if s.config.Server.EnableMetrics {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Handler())
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r, recipeService, userService, listService, authService)
	})

	return r
}

func (s *Server) setupAPIV1Routes(
	r chi.Router,
	recipeService inbound.RecipeService,
	userService *userapp.Service,
	listService *listapp.Service,
	authService *security.AuthService,
) {
	recipeH := handlers.NewRecipeHandlers(recipeService, s.logger)
	authH := handlers.NewAuthHandlers(userService, s.logger)
	listH := handlers.NewShoppingListHandlers(listService, s.logger)
	adminH := handlers.NewAdminHandlers(userService, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Get("/profile", authH.Profile)
		})
	})

	r.Route("/recipes", func(r chi.Router) {
		// Public discovery routes. A session token is honoured when
		// present so logged-in browsing carries the user's identity,
		// but anonymous requests pass straight through.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(authService))
			r.Get("/", recipeH.Browse)
			r.Get("/{id}", recipeH.Get)
			r.Get("/{id}/comments", recipeH.ListComments)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))
			r.Post("/", recipeH.Create)
			r.Get("/mine", recipeH.ListMine)
			r.Get("/favorites", recipeH.ListFavorites)
			r.Post("/import", recipeH.Import)
			r.Post("/generate", recipeH.Generate)
			r.Put("/{id}", recipeH.Update)
			r.Delete("/{id}", recipeH.Delete)
			r.Post("/{id}/rating", recipeH.Rate)
			r.Post("/{id}/comments", recipeH.Comment)
			r.Post("/{id}/favorite", recipeH.Favorite)
			r.Delete("/{id}/favorite", recipeH.Unfavorite)
		})
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/categories", recipeH.Categories)
		r.Get("/areas", recipeH.Areas)
		r.Get("/recipes/{externalID}", recipeH.GetCatalogRecipe)
	})

	r.Route("/shopping-list", func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))
		r.Get("/", listH.Get)
		r.Delete("/", listH.Clear)
		r.Post("/recipes", listH.AddRecipe)
		r.Post("/items", listH.AddItem)
		r.Post("/items/{itemID}/toggle", listH.ToggleItem)
		r.Delete("/items/{itemID}", listH.RemoveItem)
		r.Post("/share", listH.Share)
		r.Delete("/share", listH.Unshare)
	})

	// Public read-only view of a shared list
	r.Get("/shopping-lists/shared/{token}", listH.GetShared)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(authService))
		r.Use(middleware.RequireAdmin())
		r.Get("/users", adminH.ListUsers)
		r.Put("/users/{id}/active", adminH.SetUserActive)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"%s","version":"%s"}`,
		s.config.App.Name, s.config.App.Version)
}
