package main

import (
	"database/sql"
	"net/http"

	"github.com/Kingsheunn/Diary/internal/auth"
	"github.com/Kingsheunn/Diary/internal/config"
	"github.com/Kingsheunn/Diary/internal/handlers"
	"github.com/Kingsheunn/Diary/internal/middleware"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/Kingsheunn/Diary/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// apiPrefix is the versioned mount point. Every route is also served at the root.
const apiPrefix = "/api/v1"

// newRouter wires repositories, services and handlers. sched may be nil, in which case
// reminder changes are stored but not rescheduled until the next rebuild.
func newRouter(database *sql.DB, cfg config.Config, sched service.ScheduleSyncer) http.Handler {
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL())
	users := repo.NewUserRepo(database)
	entries := repo.NewEntryRepo(database)

	accounts := service.NewAccountService(users, tokens, sched, nil)
	authH := &handlers.AuthHandler{Accounts: accounts}
	profileH := &handlers.ProfileHandler{Accounts: accounts}
	entryH := &handlers.EntryHandler{Entries: service.NewEntryService(entries)}
	reminderH := &handlers.ReminderHandler{Reminders: service.NewReminderService(users, sched, nil)}
	systemH := &handlers.SystemHandler{}
	if database != nil {
		systemH.DB = database
	}
	authLimiter := middleware.AuthRateLimiter(cfg.AuthRatePerMinute)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != "", "/docs"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.Auth(tokens, middleware.DefaultPublicPaths(apiPrefix)))

	routes := func(r chi.Router) {
		r.Get("/", systemH.Welcome)
		r.Get("/health", systemH.Health)
		r.Get("/ready", systemH.Ready)

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
		})

		r.Get("/profile", profileH.Get)
		r.Put("/profile", profileH.Update)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entryH.List)
			r.Post("/", entryH.Create)
			r.Get("/{id}", entryH.Get)
			r.Put("/{id}", entryH.Update)
			r.Delete("/{id}", entryH.Delete)
		})

		r.Get("/reminder", reminderH.Get)
		r.Put("/reminder", reminderH.Set)
	}
	routes(r)
	r.Route(apiPrefix, routes)

	r.Handle("/metrics", promhttp.Handler())

	if cfg.DocsDir != "" {
		r.Get("/docs", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/docs/", http.StatusMovedPermanently)
		})
		r.Handle("/docs/*", http.StripPrefix("/docs/", http.FileServer(http.Dir(cfg.DocsDir))))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		handlers.WriteJSON(w, http.StatusNotFound, handlers.ErrorResponse{Message: "Route not found", Status: "error"})
	})
	return r
}
