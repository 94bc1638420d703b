package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/donothingclub/donothing/internal/api/apierr"
	"github.com/donothingclub/donothing/internal/api/request"
	"github.com/donothingclub/donothing/internal/api/response"
	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/services/user"
)

// UserHandler handles user-related endpoints
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	u, err := h.userService.Get(r.Context(), model.UserID(id))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}

// Register handles POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("userId is required"))
		return
	}

	var loc *model.Location
	if req.CountryCode != "" || req.Country != "" {
		loc = &model.Location{Country: req.Country, CountryCode: req.CountryCode}
	}

	u, err := h.userService.Register(r.Context(), model.UserID(req.UserID), req.Username, req.Registered, loc)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(u))
}

// RecordTime handles PUT /users/{id}/time
func (h *UserHandler) RecordTime(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req request.RecordTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Time < 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("time must not be negative"))
		return
	}

	if err := h.userService.RecordTime(r.Context(), model.UserID(id), req.Time); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
