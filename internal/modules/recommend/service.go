package recommend

import (
	"context"
	"fmt"
	"log"
	"strings"

	"foodfinder/internal/ai"
	"foodfinder/internal/geo"
	"foodfinder/internal/places"
)

// Searcher is the slice of the places client the service needs.
type Searcher interface {
	SearchNearby(ctx context.Context, query string, lat, lng float64, radiusM, limit int) ([]places.Venue, error)
}

// QueryLogger records served queries for later analysis. Implementations must
// be safe to call on the request path; failures are logged and ignored.
type QueryLogger interface {
	Save(ctx context.Context, query string, attrs any, countResults int) error
}

// Service runs the recommendation flow: validate, extract intent, search,
// filter, rank and format. Each request is one linear pass with two sequential
// outbound calls.
type Service struct {
	extractor ai.IntentExtractor
	places    Searcher
	geocoder  geo.Geocoder // nil when geocoding is not configured
	logger    QueryLogger  // nil when query logging is not configured

	defaultRadiusM int
}

// NewService wires the recommendation service. geocoder and logger may be nil.
func NewService(extractor ai.IntentExtractor, searcher Searcher, geocoder geo.Geocoder, logger QueryLogger, defaultRadiusM int) *Service {
	if defaultRadiusM <= 0 {
		defaultRadiusM = 10000
	}
	return &Service{
		extractor:      extractor,
		places:         searcher,
		geocoder:       geocoder,
		logger:         logger,
		defaultRadiusM: defaultRadiusM,
	}
}

// Recommend executes one request end to end.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrValidation)
	}

	lat, lng, err := s.resolveCoordinates(ctx, req)
	if err != nil {
		return nil, err
	}

	intent, err := s.extractor.ExtractIntent(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: intent extraction: %v", ErrUpstream, err)
	}
	applyOverrides(intent, req)

	maxRadiusM := s.maxRadiusM(req)

	rawLimit := limit * 5
	if rawLimit < 30 {
		rawLimit = 30
	}

	venues, err := s.places.SearchNearby(ctx, searchQuery(intent, req.Query), lat, lng, maxRadiusM, rawLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: places search: %v", ErrUpstream, err)
	}

	fillDistances(venues, lat, lng)

	if len(venues) == 0 {
		return &Response{
			Query:           req.Query,
			Attributes:      intent,
			Recommendations: []Recommendation{},
			Message:         buildMessage(req.Query, intent, nil),
		}, nil
	}

	filtered := preFilter(intent, venues, float64(maxRadiusM))
	if len(filtered) == 0 {
		return &Response{
			Query:           req.Query,
			Attributes:      intent,
			Recommendations: []Recommendation{},
			Message:         fmt.Sprintf("No places found within %.0f km.", float64(maxRadiusM)/1000),
		}, nil
	}

	ranked := rankVenues(intent, filtered)
	ranked = reRankWithReviews(req.Query, intent, ranked)

	// Logged below: how many candidates ranked, not how many were served.
	candidateCount := len(ranked)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recs := make([]Recommendation, 0, len(ranked))
	for _, v := range ranked {
		recs = append(recs, Recommendation{
			PlaceID:    v.PlaceID,
			Name:       v.Name,
			Category:   v.Category,
			Popularity: v.Popularity,
			DistanceM:  v.DistanceM,
			Address:    v.Address,
			MenuLink:   v.MenuLink,
			Reason:     v.Reason,
			Score:      v.ScoreWithReviews,
			Lat:        v.Lat,
			Lng:        v.Lng,
		})
	}

	// Non-critical: a logging failure must never fail the request.
	if s.logger != nil {
		if err := s.logger.Save(ctx, req.Query, intent, candidateCount); err != nil {
			log.Printf("query log save failed: %v", err)
		}
	}

	return &Response{
		Query:           req.Query,
		Attributes:      intent,
		Recommendations: recs,
		Message:         buildMessage(req.Query, intent, recs),
	}, nil
}

// resolveCoordinates applies the location_text geocoding path and validates
// the final coordinate pair.
func (s *Service) resolveCoordinates(ctx context.Context, req Request) (float64, float64, error) {
	useMyLocation := req.UseMyLocation != nil && *req.UseMyLocation

	if !useMyLocation && req.LocationText != "" {
		if s.geocoder == nil {
			return 0, 0, fmt.Errorf("%w: geocoding is not configured", ErrUpstream)
		}
		lat, lng, err := s.geocoder.Geocode(ctx, req.LocationText)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: could not geocode location %q", ErrValidation, req.LocationText)
		}
		return lat, lng, nil
	}

	if req.Lat == nil || req.Lng == nil {
		return 0, 0, fmt.Errorf("%w: latitude and longitude required", ErrValidation)
	}
	if !geo.ValidCoordinate(*req.Lat, *req.Lng) {
		return 0, 0, fmt.Errorf("%w: invalid coordinates", ErrValidation)
	}
	return *req.Lat, *req.Lng, nil
}

// applyOverrides merges explicit caller inputs into the extracted intent.
// veg_only participates in OR logic with query auto-detection.
func applyOverrides(intent *ai.Intent, req Request) {
	if intent.RawQuery == "" {
		intent.RawQuery = req.Query
	}
	if req.VegOnly != nil && *req.VegOnly {
		intent.VegOnly = true
	}
	if req.Budget != nil {
		intent.Budget = req.Budget
	}
	if req.MaxDistanceKm != nil {
		m := *req.MaxDistanceKm * 1000
		intent.MaxDistanceM = &m
	}
}

// searchQuery picks what to send to the places provider: dish beats cuisine
// beats style beats the raw query.
func searchQuery(intent *ai.Intent, rawQuery string) string {
	switch {
	case len(intent.Dish) > 0:
		return intent.Dish[0]
	case intent.Cuisine != "":
		return intent.Cuisine
	case len(intent.FoodStyle) > 0:
		return intent.FoodStyle[0]
	default:
		return rawQuery
	}
}

func (s *Service) maxRadiusM(req Request) int {
	if req.MaxDistanceKm != nil {
		return int(*req.MaxDistanceKm * 1000)
	}
	if req.RadiusM != nil && *req.RadiusM > 0 {
		return *req.RadiusM
	}
	return s.defaultRadiusM
}

// fillDistances computes haversine distances for venues the provider returned
// without one.
func fillDistances(venues []places.Venue, lat, lng float64) {
	for i := range venues {
		if venues[i].DistanceM == nil && (venues[i].Lat != 0 || venues[i].Lng != 0) {
			d := geo.HaversineM(lat, lng, venues[i].Lat, venues[i].Lng)
			venues[i].DistanceM = &d
		}
	}
}

// preFilter applies the hard constraints: max radius, avoided cuisines and
// the veg-only flag.
func preFilter(intent *ai.Intent, venues []places.Venue, maxRadiusM float64) []places.Venue {
	filtered := make([]places.Venue, 0, len(venues))
	for _, v := range venues {
		if maxRadiusM > 0 && v.DistanceM != nil && *v.DistanceM > maxRadiusM {
			continue
		}

		cat := strings.ToLower(v.Category)
		avoided := false
		for _, a := range intent.AvoidCuisine {
			if a != "" && strings.Contains(cat, a) {
				avoided = true
				break
			}
		}
		if avoided {
			continue
		}

		if intent.VegOnly && !isVegVenue(&v) {
			continue
		}

		filtered = append(filtered, v)
	}
	return filtered
}
