package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"foodfinder/internal/geo"
)

type GeocodeHandler struct {
	geocoder geo.Geocoder // nil when GOOGLE_MAPS_API_KEY is not set
}

func NewGeocodeHandler(geocoder geo.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

type geocodeReq struct {
	LocationText string `json:"location_text"`
}

// Geocode handles POST /api/geocode: free-text location -> coordinates.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	var req geocodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.LocationText) == "" {
		writeError(c, http.StatusBadRequest, "missing location_text")
		return
	}
	if h.geocoder == nil {
		writeError(c, http.StatusServiceUnavailable, "geocoding is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	lat, lng, err := h.geocoder.Geocode(ctx, req.LocationText)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			writeError(c, http.StatusNotFound, "location not found")
			return
		}
		writeError(c, http.StatusBadGateway, "geocoding failed")
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"lat": lat, "lng": lng})
}
