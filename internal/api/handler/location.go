package handler

import (
	"net/http"

	"github.com/donothingclub/donothing/internal/api/apierr"
	"github.com/donothingclub/donothing/internal/api/response"
	"github.com/donothingclub/donothing/internal/services/location"
)

// Headers the edge proxy may stamp with the caller's country
const (
	headerCloudflareCountry = "CF-IPCountry"
	headerCountryCode       = "X-Country-Code"
)

// LocationHandler handles the geolocation endpoint
type LocationHandler struct {
	locationService *location.Service
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *location.Service) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// Resolve handles GET /location
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := r.Header.Get(headerCloudflareCountry)
	if code == "" {
		code = r.Header.Get(headerCountryCode)
	}

	loc, err := h.locationService.Resolve(code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Location{
		Country:     loc.Country,
		CountryCode: loc.CountryCode,
	})
}
