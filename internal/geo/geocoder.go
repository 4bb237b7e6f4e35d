package geo

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrNotFound is returned when a location text resolves to nothing.
var ErrNotFound = errors.New("location not found")

// Geocoder resolves free-text location names to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (lat, lng float64, err error)
}

// MapsGeocoder implements Geocoder on the Google Maps Geocoding API.
type MapsGeocoder struct {
	client *maps.Client
}

// NewMapsGeocoder creates a geocoder with the given API key.
func NewMapsGeocoder(apiKey string) (*MapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MapsGeocoder{client: client}, nil
}

// Geocode converts a typed location name to (lat, lng).
func (g *MapsGeocoder) Geocode(ctx context.Context, text string) (float64, float64, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: text})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
