package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/duoplan/duoplan/internal/auth"
	"github.com/duoplan/duoplan/internal/handler"
	"github.com/duoplan/duoplan/internal/metrics"
	"github.com/duoplan/duoplan/internal/middleware"
	"github.com/duoplan/duoplan/internal/store"
)

type Server struct {
	db          *sql.DB
	authSvc     *auth.Service
	dayH        *handler.DayHandler
	todoH       *handler.TodoHandler
	templateH   *handler.TemplateHandler
	settingsH   *handler.SettingsHandler
	userH       *handler.UserHandler
	statsH      *handler.StatsHandler
	authH       *handler.AuthHandler
	rateLimiter *middleware.RateLimiter
	registry    *prometheus.Registry
	recorder    metrics.Recorder
	logger      *slog.Logger
}

func New(db *sql.DB, registry *prometheus.Registry, logger *slog.Logger) *Server {
	var rec metrics.Recorder = metrics.Noop{}
	if registry != nil {
		rec = metrics.NewCollector(registry)
	}

	docs := store.NewDocumentStore(db, rec)
	templateStore := store.NewTemplateStore(docs)
	dayStore := store.NewDayStore(docs, templateStore)
	todoStore := store.NewTodoStore(docs)
	settingsStore := store.NewSettingsStore(docs)
	userStore := store.NewUserStore(docs)
	authSvc := auth.NewService(docs)

	return &Server{
		db:          db,
		authSvc:     authSvc,
		dayH:        handler.NewDayHandler(dayStore, logger.With("component", "day")),
		todoH:       handler.NewTodoHandler(todoStore, logger.With("component", "todo")),
		templateH:   handler.NewTemplateHandler(templateStore, logger.With("component", "template")),
		settingsH:   handler.NewSettingsHandler(settingsStore, logger.With("component", "settings")),
		userH:       handler.NewUserHandler(userStore, logger.With("component", "user")),
		statsH:      handler.NewStatsHandler(dayStore, settingsStore, logger.With("component", "stats")),
		authH:       handler.NewAuthHandler(authSvc, logger.With("component", "auth")),
		rateLimiter: middleware.NewRateLimiter(10, time.Minute, 10),
		registry:    registry,
		recorder:    rec,
		logger:      logger,
	}
}

// RateLimiter exposes the login rate limiter so main can stop its sweep on
// shutdown.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /auth/verify", s.authH.Verify)
	if s.registry != nil {
		outerMux.Handle("GET /metrics", metrics.Handler(s.registry))
	}

	// Protected routes behind session auth
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.authSvc)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"), s.recorder)(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET /auth/password", s.authH.PasswordStatus)
	mux.HandleFunc("PUT /auth/password", s.authH.SetPassword)
	mux.HandleFunc("DELETE /auth/password", s.authH.RemovePassword)

	// Users
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("PUT /api/users/{id}", s.userH.Rename)

	// Days
	mux.HandleFunc("GET /api/days", s.dayH.List)
	mux.HandleFunc("GET /api/days/{date}", s.dayH.Get)
	mux.HandleFunc("PUT /api/days/{date}", s.dayH.Put)
	mux.HandleFunc("POST /api/days/{date}/template", s.dayH.ApplyTemplate)
	mux.HandleFunc("GET /api/schedules/{date}", s.dayH.GetSchedule)
	mux.HandleFunc("PUT /api/schedules/{date}", s.dayH.PutSchedule)
	mux.HandleFunc("GET /api/tasks/{date}", s.dayH.GetTasks)
	mux.HandleFunc("PUT /api/tasks/{date}", s.dayH.PutTasks)

	// Global todos
	mux.HandleFunc("GET /api/todos", s.todoH.Get)
	mux.HandleFunc("PUT /api/todos", s.todoH.Put)
	mux.HandleFunc("POST /api/todos", s.todoH.Add)
	mux.HandleFunc("POST /api/todos/{id}/cycle", s.todoH.Cycle)
	mux.HandleFunc("PUT /api/todos/{id}/link", s.todoH.Link)
	mux.HandleFunc("DELETE /api/todos/{id}", s.todoH.Delete)

	// Schedule templates
	mux.HandleFunc("GET /api/templates", s.templateH.List)
	mux.HandleFunc("POST /api/templates", s.templateH.Create)
	mux.HandleFunc("PUT /api/templates/{id}", s.templateH.Update)
	mux.HandleFunc("DELETE /api/templates/{id}", s.templateH.Delete)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Put)

	// Derived views
	mux.HandleFunc("GET /api/stats/calendar", s.statsH.Calendar)
	mux.HandleFunc("GET /api/stats/vacation", s.statsH.Vacation)
	mux.HandleFunc("GET /api/stats/homework", s.statsH.Homework)
	mux.HandleFunc("GET /api/stats/pk", s.statsH.Comparison)
}
