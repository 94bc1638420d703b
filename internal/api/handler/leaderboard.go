package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/donothingclub/donothing/internal/api/apierr"
	"github.com/donothingclub/donothing/internal/api/response"
	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/services/user"
)

// LeaderboardHandler handles ranking endpoints
type LeaderboardHandler struct {
	userService *user.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(userService *user.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		userService: userService,
	}
}

// Global handles GET /leaderboard/global
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	entries, err := h.userService.Leaderboard(r.Context(), model.ScopeGlobal, "")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Country handles GET /leaderboard/country/{countryCode}
func (h *LeaderboardHandler) Country(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["countryCode"]

	entries, err := h.userService.Leaderboard(r.Context(), model.ScopeCountry, code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}
