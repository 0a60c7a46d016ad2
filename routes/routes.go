package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/blog-platform/app"
	"github.com/upb/blog-platform/handlers"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(deps.Config.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := handlers.NewHealthHandler(deps.DB, deps.KnowledgeBase, deps.Provider, deps.Logger)
	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Logger)
	blogHandler := handlers.NewBlogHandler(deps.BlogService, deps.Logger)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.With(deps.AuthMiddleware.RequireAuth).Get("/me", authHandler.HandleMe)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.HandleList)
			r.With(deps.AuthMiddleware.RequireAuth).Post("/", blogHandler.HandleCreate)
		})

		r.Get("/kb", assistantHandler.HandleListEntries)

		r.Route("/ai/query", func(r chi.Router) {
			r.With(deps.QueryLimiter.Middleware).Post("/", assistantHandler.HandleQuery)
			r.MethodNotAllowed(assistantHandler.HandleQueryMethodNotAllowed)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteMethodNotAllowed(w, nil)
	})

	return r
}
