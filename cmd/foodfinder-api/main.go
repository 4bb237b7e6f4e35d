// Entry point: loads config, wires providers and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodfinder/internal/ai"
	"foodfinder/internal/config"
	"foodfinder/internal/geo"
	httptransport "foodfinder/internal/http"
	"foodfinder/internal/modules/querylog"
	"foodfinder/internal/modules/recommend"
	"foodfinder/internal/places"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extractor ai.IntentExtractor
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		gemini, err := ai.NewGeminiExtractor(ctx, cfg.LLM.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		extractor = gemini
	case config.ProviderOpenAI:
		extractor = ai.NewOpenAIExtractor(cfg.LLM.OpenAIKey)
	}

	placesClient := places.NewClient(cfg.Foursquare.APIKey)

	var geocoder geo.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := geo.NewMapsGeocoder(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("geocoder init: %v", err)
		}
		geocoder = g
	}

	var logger recommend.QueryLogger
	if cfg.Mongo.URI != "" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		store, err := querylog.NewStore(connectCtx, cfg.Mongo.URI, cfg.Mongo.DBName)
		cancel()
		if err != nil {
			// Query logging is best-effort; run without it rather than die.
			log.Printf("query log store unavailable: %v", err)
		} else {
			defer store.Close(context.Background())
			logger = store
		}
	}

	svc := recommend.NewService(extractor, placesClient, geocoder, logger, cfg.DefaultRadiusMeters)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Recommender: svc,
		Extractor:   extractor,
		Geocoder:    geocoder,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s (llm provider: %s)", cfg.HTTP.Addr, cfg.LLM.Provider)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
