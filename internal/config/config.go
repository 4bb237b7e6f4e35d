// Package config loads process-wide settings once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config aggregates application-wide configuration values. It is built once in
// main and passed down explicitly; nothing reads the environment after Load.
type Config struct {
	HTTP struct {
		Addr string
	}
	LLM struct {
		Provider  string // "gemini" or "openai"
		GeminiKey string
		OpenAIKey string
	}
	Foursquare struct {
		APIKey string
	}
	Maps struct {
		APIKey string // optional; geocoding is disabled when empty
	}
	Mongo struct {
		URI    string // optional; query logging is disabled when empty
		DBName string
	}
	DefaultRadiusMeters int
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = ":" + envOrDefault("PORT", "8000")

	cfg.LLM.Provider = envOrDefault("LLM_PROVIDER", ProviderGemini)
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	switch cfg.LLM.Provider {
	case ProviderGemini:
		if cfg.LLM.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	case ProviderOpenAI:
		if cfg.LLM.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLM.Provider)
	}

	cfg.Foursquare.APIKey = os.Getenv("FOURSQUARE_API_KEY")
	if cfg.Foursquare.APIKey == "" {
		return nil, fmt.Errorf("FOURSQUARE_API_KEY is required")
	}

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Mongo.URI = os.Getenv("MONGODB_URI")
	cfg.Mongo.DBName = envOrDefault("MONGO_DB_NAME", "food_reco_db")

	cfg.DefaultRadiusMeters = envOrDefaultInt("DEFAULT_RADIUS_METERS", 10000)

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
