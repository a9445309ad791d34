package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edgomes/portfolio-backend/internal/handler"
	"github.com/edgomes/portfolio-backend/internal/httputil"
	authmw "github.com/edgomes/portfolio-backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ProjectHandler      *handler.ProjectHandler
	CategoryHandler     *handler.CategoryHandler
	EngagementHandler   *handler.EngagementHandler
	NotificationHandler *handler.NotificationHandler
	ShowcaseHandler     *handler.ShowcaseHandler
	JWTSecret           string

	// UploadDir is served at /uploads/* when non-empty (local storage).
	UploadDir string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	// GitHub showcase projections; separate namespace from stored projects
	r.Route("/showcase", func(r chi.Router) {
		r.Get("/", cfg.ShowcaseHandler.List)
		r.Get("/{id}", cfg.ShowcaseHandler.Get)
	})

	// Public catalog with optional authentication for like state
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.JWTSecret))

		r.Get("/projects", cfg.ProjectHandler.List)
		r.Get("/projects/search", cfg.ProjectHandler.Search)
		r.Get("/projects/{id}", cfg.ProjectHandler.Get)
		r.Get("/projects/{id}/comments", cfg.EngagementHandler.ListComments)
		r.Get("/categories", cfg.CategoryHandler.List)
		r.Get("/users/{username}", cfg.UserHandler.GetProfile)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		// Current user endpoints
		r.Get("/me", cfg.AuthHandler.Me)
		r.Put("/me/profile", cfg.UserHandler.UpdateProfile)

		// Engagement
		r.Post("/projects/{id}/comments", cfg.EngagementHandler.AddComment)
		r.Post("/projects/{id}/like", cfg.EngagementHandler.ToggleLike)

		// Notifications
		r.Get("/notifications", cfg.NotificationHandler.List)
		r.Post("/notifications/read", cfg.NotificationHandler.MarkRead)

		// Admin content management; handlers enforce admin and ownership
		r.Post("/projects", cfg.ProjectHandler.Create)
		r.Put("/projects/{id}", cfg.ProjectHandler.Update)
		r.Delete("/projects/{id}", cfg.ProjectHandler.Delete)
		r.Get("/admin/stats", cfg.ProjectHandler.Stats)

		r.Post("/categories", cfg.CategoryHandler.Create)
		r.Put("/categories/{id}", cfg.CategoryHandler.Update)
		r.Delete("/categories/{id}", cfg.CategoryHandler.Delete)
	})

	// Locally stored media
	if cfg.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
