package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/founder-srm/foundathon/internal/api/handler"
	"github.com/founder-srm/foundathon/internal/api/middleware"
	"github.com/founder-srm/foundathon/internal/services/auth"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/services/stats"
	"github.com/founder-srm/foundathon/internal/services/submission"
	"github.com/founder-srm/foundathon/internal/services/team"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	LockService       *lock.Service
	TeamController    *team.Controller
	SubmissionService *submission.Service
	StatsService      *stats.Service
	RateLimit         middleware.RateLimitConfig
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	statementHandler := handler.NewStatementHandler(cfg.StatsService, cfg.LockService)
	teamHandler := handler.NewTeamHandler(cfg.TeamController)
	submissionHandler := handler.NewSubmissionHandler(cfg.SubmissionService)
	adminHandler := handler.NewAdminHandler(cfg.StatsService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.RequireAdmin()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	rateLimitMiddleware := middleware.NewRateLimiter(cfg.RateLimit).Middleware()

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for register/login)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Catalog listing is public; lock issuance requires auth and is
	// rate limited because it is the hot path when registration opens
	api.HandleFunc("/problem-statements", statementHandler.List).Methods(http.MethodGet)

	lockRoute := api.PathPrefix("/problem-statements/{id}/lock").Subrouter()
	lockRoute.Use(authMiddleware)
	lockRoute.Use(rateLimitMiddleware)
	lockRoute.HandleFunc("", statementHandler.Lock).Methods(http.MethodPost)

	// Team routes (all require auth; registration shares the rate limit)
	registerRoute := api.PathPrefix("/teams").Subrouter()
	registerRoute.Use(authMiddleware)
	registerRoute.Use(rateLimitMiddleware)
	registerRoute.HandleFunc("", teamHandler.Register).Methods(http.MethodPost)

	teams := api.PathPrefix("/teams").Subrouter()
	teams.Use(authMiddleware)
	teams.HandleFunc("/me", teamHandler.GetMe).Methods(http.MethodGet)
	teams.HandleFunc("/me/members", teamHandler.UpdateMembers).Methods(http.MethodPatch)
	teams.HandleFunc("/me/submission", submissionHandler.Put).Methods(http.MethodPut)
	teams.HandleFunc("/me/submission", submissionHandler.Get).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(adminMiddleware)
	admin.HandleFunc("/stats", adminHandler.Stats).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
