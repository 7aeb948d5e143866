package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

// WeatherConfig points at the current-weather provider (OpenWeatherMap).
type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

// PlacesConfig points at the place-search provider. The provider allows at
// most ~2 requests per second; RequestSpacing enforces that on our side.
type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	RequestSpacing time.Duration
}

// GeocodingConfig points at the reverse-geocoding provider (LocationIQ).
type GeocodingConfig struct {
	APIKey  string
	BaseURL string
}

// LLMConfig holds the Gemini settings for suggestion generation.
type LLMConfig struct {
	APIKey string
	Model  string
}

type Config struct {
	Repositories    RepositoriesConfig
	Weather         WeatherConfig
	Places          PlacesConfig
	Geocoding       GeocodingConfig
	LLM             LLMConfig
	ServerPort      string
	JWTSecret       string
	UpstreamTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
				DB:       getEnvOrDefault("POSTGRES_DB", "wander"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 30,
				MinConns: 5,
			},
		},
		Weather: WeatherConfig{
			APIKey:   os.Getenv("OPENWEATHER_API_KEY"),
			BaseURL:  getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			CacheTTL: getDurationOrDefault("WEATHER_CACHE_TTL", 5*time.Minute),
		},
		Places: PlacesConfig{
			APIKey:         os.Getenv("PLACES_API_KEY"),
			BaseURL:        getEnvOrDefault("PLACES_BASE_URL", "https://us1.locationiq.com/v1/nearby.php"),
			RequestSpacing: getDurationOrDefault("PLACES_REQUEST_SPACING", 600*time.Millisecond),
		},
		Geocoding: GeocodingConfig{
			APIKey:  os.Getenv("LOCATIONIQ_API_KEY"),
			BaseURL: getEnvOrDefault("LOCATIONIQ_BASE_URL", "https://us1.locationiq.com/v1/reverse.php"),
		},
		LLM: LLMConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		ServerPort:      getEnvOrDefault("SERVER_PORT", "8091"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET_KEY", ""),
		UpstreamTimeout: getDurationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second),
	}

	if cfg.Repositories.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
