package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"foodfinder/internal/geo"
	"foodfinder/internal/modules/recommend"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRecommender struct {
	resp *recommend.Response
	err  error

	gotReq recommend.Request
}

func (s *stubRecommender) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newRecommendRouter(svc Recommender) *gin.Engine {
	r := gin.New()
	r.POST("/api/recommend", NewRecommendHandler(svc).Recommend)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecommendHandler_Success(t *testing.T) {
	recs := make([]recommend.Recommendation, 5)
	for i := range recs {
		recs[i] = recommend.Recommendation{
			PlaceID: fmt.Sprintf("p%d", i),
			Name:    fmt.Sprintf("Place %d", i),
			Score:   1 - float64(i)*0.1,
		}
	}
	svc := &stubRecommender{resp: &recommend.Response{
		Query:           "spicy cheesy fast food under 200 near Guindy",
		Recommendations: recs,
		Message:         "here you go",
	}}
	r := newRecommendRouter(svc)

	w := postJSON(t, r, "/api/recommend",
		`{"query":"spicy cheesy fast food under 200 near Guindy","lat":12.9959,"lng":80.22,"limit":5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp recommend.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) > 5 {
		t.Errorf("got %d recommendations, want at most 5", len(resp.Recommendations))
	}
	if svc.gotReq.Limit != 5 {
		t.Errorf("handler passed limit %d, want 5", svc.gotReq.Limit)
	}
	if svc.gotReq.Lat == nil || *svc.gotReq.Lat != 12.9959 {
		t.Error("lat not bound from body")
	}
}

func TestRecommendHandler_InvalidJSON(t *testing.T) {
	r := newRecommendRouter(&stubRecommender{})

	w := postJSON(t, r, "/api/recommend", `{"query": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRecommendHandler_ValidationError(t *testing.T) {
	svc := &stubRecommender{err: fmt.Errorf("%w: query is required", recommend.ErrValidation)}
	r := newRecommendRouter(svc)

	w := postJSON(t, r, "/api/recommend", `{"lat":12.99,"lng":80.22}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "query is required") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRecommendHandler_UpstreamError(t *testing.T) {
	svc := &stubRecommender{err: fmt.Errorf("%w: places search: timeout", recommend.ErrUpstream)}
	r := newRecommendRouter(svc)

	w := postJSON(t, r, "/api/recommend", `{"query":"dosa","lat":12.99,"lng":80.22}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestRecommendHandler_UnknownError(t *testing.T) {
	svc := &stubRecommender{err: errors.New("boom")}
	r := newRecommendRouter(svc)

	w := postJSON(t, r, "/api/recommend", `{"query":"dosa","lat":12.99,"lng":80.22}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("internal error details should not leak to clients")
	}
}

type stubHandlerGeocoder struct {
	lat, lng float64
	err      error
}

func (s *stubHandlerGeocoder) Geocode(ctx context.Context, text string) (float64, float64, error) {
	return s.lat, s.lng, s.err
}

func newGeocodeRouter(g geo.Geocoder) *gin.Engine {
	r := gin.New()
	r.POST("/api/geocode", NewGeocodeHandler(g).Geocode)
	return r
}

func TestGeocodeHandler_Success(t *testing.T) {
	r := newGeocodeRouter(&stubHandlerGeocoder{lat: 13.0827, lng: 80.2707})

	w := postJSON(t, r, "/api/geocode", `{"location_text":"Chennai Central"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["lat"] != 13.0827 || body["lng"] != 80.2707 {
		t.Errorf("coordinates = %v", body)
	}
}

func TestGeocodeHandler_MissingText(t *testing.T) {
	r := newGeocodeRouter(&stubHandlerGeocoder{})

	w := postJSON(t, r, "/api/geocode", `{"location_text":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGeocodeHandler_NotConfigured(t *testing.T) {
	r := newGeocodeRouter(nil)

	w := postJSON(t, r, "/api/geocode", `{"location_text":"Chennai"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGeocodeHandler_NotFound(t *testing.T) {
	r := newGeocodeRouter(&stubHandlerGeocoder{err: geo.ErrNotFound})

	w := postJSON(t, r, "/api/geocode", `{"location_text":"Nowhereville"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
