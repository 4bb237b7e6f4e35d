// Package http wires the Gin router for the API surface.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodfinder/internal/ai"
	"foodfinder/internal/geo"
	"foodfinder/internal/http/handlers"
	"foodfinder/internal/http/middleware"
)

// RouterDeps carries everything the routes need. Geocoder may be nil.
type RouterDeps struct {
	Recommender handlers.Recommender
	Extractor   ai.IntentExtractor
	Geocoder    geo.Geocoder
}

// NewRouter builds the Gin engine with middleware and all API routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())

	// The frontend may be served from anywhere; credentials stay off.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	r.Use(cors.New(corsCfg))

	recommendHandler := handlers.NewRecommendHandler(deps.Recommender)
	geocodeHandler := handlers.NewGeocodeHandler(deps.Geocoder)
	intentHandler := handlers.NewIntentHandler(deps.Extractor)

	api := r.Group("/api")
	api.POST("/recommend", recommendHandler.Recommend)
	api.POST("/geocode", geocodeHandler.Geocode)
	api.GET("/test-llm", intentHandler.TestLLM)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
