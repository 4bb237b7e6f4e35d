package geo

import (
	"math"
	"testing"
)

func TestHaversineM_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantM     float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 12.9959, lng1: 80.22,
			lat2: 12.9959, lng2: 80.22,
			wantM:     0,
			tolerance: 1,
		},
		{
			name: "Guindy to Chennai Central (~9km)",
			lat1: 12.9959, lng1: 80.22,
			lat2: 13.0827, lng2: 80.2707,
			wantM:     11000,
			tolerance: 2000,
		},
		{
			name: "New York to Los Angeles (~3944km)",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantM:     3944000,
			tolerance: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineM(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantM) > tt.tolerance {
				t.Errorf("HaversineM() = %f, want %f (±%f)", got, tt.wantM, tt.tolerance)
			}
		})
	}
}

func TestHaversineM_Symmetry(t *testing.T) {
	d1 := HaversineM(12.0, 80.0, 13.0, 81.0)
	d2 := HaversineM(13.0, 81.0, 12.0, 80.0)
	if math.Abs(d1-d2) > 0.001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{"guindy", 12.9959, 80.22, true},
		{"lat too big", 91, 0, false},
		{"lat too small", -91, 0, false},
		{"lng too big", 0, 181, false},
		{"lng too small", 0, -181, false},
		{"poles", -90, 180, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCoordinate(tt.lat, tt.lng); got != tt.want {
				t.Errorf("ValidCoordinate(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
