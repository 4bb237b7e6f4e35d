// Package recommend orchestrates the query → intent → venues → ranking flow.
package recommend

import (
	"errors"

	"foodfinder/internal/ai"
)

var (
	// ErrValidation marks a bad or incomplete request.
	ErrValidation = errors.New("invalid request")
	// ErrUpstream marks a failure in the LLM or places provider.
	ErrUpstream = errors.New("upstream provider failure")
)

// DefaultLimit caps the response when the caller does not ask for a size.
const DefaultLimit = 10

// Request is the body of POST /api/recommend.
type Request struct {
	Query string `json:"query"`

	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	// RadiusM is a legacy search radius in meters; MaxDistanceKm supersedes it.
	RadiusM       *int     `json:"radius"`
	VegOnly       *bool    `json:"veg_only"`
	Budget        *float64 `json:"budget"`
	MaxDistanceKm *float64 `json:"max_distance_km"`

	// LocationText is geocoded server-side when UseMyLocation is false.
	LocationText  string `json:"location_text"`
	UseMyLocation *bool  `json:"use_my_location"`

	Limit int `json:"limit"`
}

// Recommendation is one ranked venue in the response.
type Recommendation struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	Popularity   float64  `json:"popularity,omitempty"`
	DistanceM    *float64 `json:"distance_m,omitempty"`
	Address      string   `json:"address,omitempty"`
	OpeningHours *string  `json:"opening_hours"`
	Rating       *float64 `json:"rating"`
	MenuLink     string   `json:"menu_link,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Score        float64  `json:"score"`
	Lat          float64  `json:"lat,omitempty"`
	Lng          float64  `json:"lng,omitempty"`
}

// Response is the body returned by POST /api/recommend.
type Response struct {
	Query           string           `json:"query"`
	Attributes      *ai.Intent       `json:"attributes"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message"`
}
