package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/ranchgame/internal/api/apierr"
	"github.com/mcoot/ranchgame/internal/api/handler"
	"github.com/mcoot/ranchgame/internal/api/middleware"
	"github.com/mcoot/ranchgame/internal/api/response"
	sharedmw "github.com/mcoot/ranchgame/internal/middleware"
	"github.com/mcoot/ranchgame/internal/services/economy"
	"github.com/mcoot/ranchgame/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	PlayerService  *player.Service
	EconomyService *economy.Service
	// AdminTokenHash is the bcrypt hash guarding /admin routes; empty disables them
	AdminTokenHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	tradeHandler := handler.NewTradeHandler(cfg.EconomyService)
	adminHandler := handler.NewAdminHandler(cfg.PlayerService)

	// Create middleware
	adminMiddleware := middleware.AdminToken(cfg.AdminTokenHash)
	playerKey := middleware.PlayerKey(cfg.PlayerService)
	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := sharedmw.Recovery(cfg.Logger, apiPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(sharedmw.Tracing())
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/players/by-id/{id}", playerHandler.GetByID).Methods(http.MethodGet)

	// Key-holder routes: the secret key is the bearer token
	api.Handle("/me", playerKey(http.HandlerFunc(playerHandler.Me))).Methods(http.MethodGet)
	api.Handle("/me/quote", playerKey(http.HandlerFunc(tradeHandler.Quote))).Methods(http.MethodGet)
	api.Handle("/me/trades", playerKey(http.HandlerFunc(tradeHandler.Create))).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(adminMiddleware)
	admin.HandleFunc("/bootstrap", adminHandler.Bootstrap).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

// apiPanicHandler answers a recovered panic with a JSON error
func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
