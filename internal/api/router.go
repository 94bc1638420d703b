package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/donothingclub/donothing/internal/api/handler"
	"github.com/donothingclub/donothing/internal/api/middleware"
	"github.com/donothingclub/donothing/internal/services/location"
	"github.com/donothingclub/donothing/internal/services/user"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	UserService     *user.Service
	LocationService *location.Service
}

// NewRouter creates a new API router with all routes configured.
// The paths are the fixed client contract; there is no version prefix.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	userHandler := handler.NewUserHandler(cfg.UserService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.UserService)
	locationHandler := handler.NewLocationHandler(cfg.LocationService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// User routes
	r.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", userHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}/time", userHandler.RecordTime).Methods(http.MethodPut)

	// Geolocation
	r.HandleFunc("/location", locationHandler.Resolve).Methods(http.MethodGet)

	// Leaderboards
	r.HandleFunc("/leaderboard/global", leaderboardHandler.Global).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/country/{countryCode}", leaderboardHandler.Country).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
