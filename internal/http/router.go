package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"portfolio/internal/events"
	"portfolio/internal/handlers"
	"portfolio/internal/portfolio"
	"portfolio/internal/service"
)

// Authenticator issues sessions and guards admin routes. *auth.Manager
// implements it.
type Authenticator interface {
	handlers.Authenticator
	RequireAdmin(next http.Handler) http.Handler
}

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Photos   service.PhotoService
	Search   service.SearchService
	Contacts service.ContactService
	Auth     Authenticator
	Renderer *portfolio.Renderer

	// DB is pinged by the health check.
	DB              handlers.Pinger
	AnalyzerEnabled bool

	// AnalyzeLimiter throttles /api/search-analyze. Nil disables it.
	AnalyzeLimiter *rate.Limiter

	// Hub serves /api/events when set.
	Hub            *events.Hub
	AllowedOrigins []string

	// PhotosDir is served under PhotosURLPrefix when the local blob store
	// is in use.
	PhotosDir       string
	PhotosURLPrefix string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(NewCORS(deps.AllowedOrigins))

	photoHandler := handlers.NewPhotoHandler(deps.Photos)
	searchHandler := handlers.NewSearchHandler(deps.Search)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	contactHandler := handlers.NewContactHandler(deps.Contacts)
	projectHandler := handlers.NewProjectHandler(deps.Renderer)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.AnalyzerEnabled)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Get("/photos", photoHandler.List)
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireAdmin)
			r.Post("/photos", photoHandler.Upload)
			r.Delete("/photos/{id}", photoHandler.Delete)
		})

		r.Get("/gallery", photoHandler.Gallery)
		r.Get("/gallery/search", searchHandler.Search)
		r.With(RateLimit(deps.AnalyzeLimiter, handlers.RateLimitExceeded)).
			Post("/search-analyze", searchHandler.Analyze)

		r.Get("/placeholder/{width}/{height}", handlers.Placeholder)

		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		r.Get("/contact-messages", contactHandler.List)
		r.Post("/contact", contactHandler.Create)

		r.Get("/projects", projectHandler.List)
		r.Get("/projects/{slug}", projectHandler.Get)

		if deps.Hub != nil {
			r.Get("/events", events.Handler(deps.Hub, deps.AllowedOrigins))
		}
	})

	if deps.PhotosDir != "" {
		prefix := "/" + strings.Trim(deps.PhotosURLPrefix, "/")
		if prefix == "/" {
			prefix = "/photos"
		}
		files := http.StripPrefix(prefix, noListing(http.FileServer(http.Dir(deps.PhotosDir))))
		r.Method(http.MethodGet, prefix+"/*", files)
		r.Method(http.MethodHead, prefix+"/*", files)
	}

	return r
}

// noListing hides directory indexes of the photo root.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
