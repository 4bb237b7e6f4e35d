// Package places wraps the Foursquare Places API.
package places

import "strings"

// Venue is the canonical venue shape the rest of the service works with.
type Venue struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Cuisine    string   `json:"cuisine,omitempty"`
	Popularity float64  `json:"popularity,omitempty"`
	DistanceM  *float64 `json:"distance_m,omitempty"`
	Lat        float64  `json:"lat,omitempty"`
	Lng        float64  `json:"lng,omitempty"`
	Address    string   `json:"address,omitempty"`
	PriceTier  *int     `json:"price_tier,omitempty"`
	Tags       string   `json:"tags,omitempty"`
	MenuLink   string   `json:"menu_link,omitempty"`
	Reviews    []string `json:"-"`
}

// Wire shapes for the Foursquare v3 places/search response.

type searchResponse struct {
	Results []fsqPlace `json:"results"`
}

type fsqPlace struct {
	FsqID      string        `json:"fsq_id"`
	Name       string        `json:"name"`
	Categories []fsqCategory `json:"categories"`
	Distance   *float64      `json:"distance"`
	Geocodes   struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Location struct {
		Address  string `json:"address"`
		Locality string `json:"locality"`
		Region   string `json:"region"`
	} `json:"location"`
	Price       *int     `json:"price"`
	Rating      float64  `json:"rating"`
	Popularity  float64  `json:"popularity"`
	Menu        string   `json:"menu"`
	Description string   `json:"description"`
	Tips        []fsqTip `json:"tips"`
}

type fsqTip struct {
	Text string `json:"text"`
}

// normalizeVenue converts a raw Foursquare item to the canonical Venue.
func normalizeVenue(p fsqPlace) Venue {
	v := Venue{
		PlaceID:   p.FsqID,
		Name:      p.Name,
		DistanceM: p.Distance,
		Lat:       p.Geocodes.Main.Latitude,
		Lng:       p.Geocodes.Main.Longitude,
		PriceTier: p.Price,
		MenuLink:  p.Menu,
	}

	if len(p.Categories) > 0 {
		v.Category = p.Categories[0].Name
	}

	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	v.Tags = strings.ToLower(strings.Join(names, " "))

	// Foursquare ratings run 0-10; popularity is a 0-1 confidence. Prefer the
	// rating, fall back to popularity rescaled onto the same axis.
	if p.Rating > 0 {
		v.Popularity = p.Rating
	} else if p.Popularity > 0 {
		v.Popularity = p.Popularity * 10
	}

	parts := make([]string, 0, 3)
	for _, s := range []string{p.Location.Address, p.Location.Locality, p.Location.Region} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	v.Address = strings.Join(parts, ", ")

	// Description and tips feed the review-overlap re-ranking downstream.
	if p.Description != "" {
		v.Reviews = append(v.Reviews, p.Description)
	}
	for _, tip := range p.Tips {
		if tip.Text != "" {
			v.Reviews = append(v.Reviews, tip.Text)
		}
	}

	return v
}

type fsqCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
