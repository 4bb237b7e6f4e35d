package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.foursquare.com/v3"

// maxAPILimit is the largest page size the search endpoint accepts.
const maxAPILimit = 50

// Client handles interactions with the Foursquare Places API.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client with the given API key.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL allows overriding the API host; used by tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchNearby queries places/search for venues matching the query around the
// given coordinate and returns them in canonical form, nearest first.
func (c *Client) SearchNearby(ctx context.Context, query string, lat, lng float64, radiusM, limit int) ([]Venue, error) {
	if limit <= 0 || limit > maxAPILimit {
		limit = maxAPILimit
	}

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	params.Set("ll", fmt.Sprintf("%f,%f", lat, lng))
	if radiusM > 0 {
		params.Set("radius", strconv.Itoa(radiusM))
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "DISTANCE")
	params.Set("fields", "fsq_id,name,categories,distance,geocodes,location,price,rating,popularity,menu,description,tips")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/places/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("foursquare: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("foursquare: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("foursquare: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("foursquare: status %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("foursquare: unmarshal response: %w", err)
	}

	venues := make([]Venue, 0, len(sr.Results))
	for _, p := range sr.Results {
		venues = append(venues, normalizeVenue(p))
	}
	return venues, nil
}
