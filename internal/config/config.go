package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-overlay-service/internal/geocode"
	"github.com/i474232898/weather-overlay-service/internal/weather"
)

type AppConfig struct {
	// Provider credentials.
	PirateWeatherAPIKey string
	OpenWeatherAPIKey   string

	// DefaultProvider serves requests that name no provider.
	DefaultProvider string

	// Default coordinates and units for requests that omit them. Both
	// coordinates stay zero when the operator configures neither raw
	// values nor a geocodable city.
	Latitude  float64
	Longitude float64
	Units     weather.UnitSystem

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PirateWeatherAPIKey = os.Getenv("PIRATEWEATHER_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.DefaultProvider = getenvDefault("WEATHER_PROVIDER", "pirateweather")

	units := weather.UnitSystem(getenvDefault("WEATHER_UNITS", "us"))
	switch units {
	case weather.UnitsUS, weather.UnitsSI, weather.UnitsCA, weather.UnitsUK:
	default:
		return nil, fmt.Errorf("invalid WEATHER_UNITS: %q", units)
	}
	cfg.Units = units

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	if err := loadDefaultCoordinates(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDefaultCoordinates fills the default coordinates, either directly
// from WEATHER_LATITUDE/WEATHER_LONGITUDE or by geocoding
// WEATHER_LOCATION_CITY when a geocoder key is configured.
func loadDefaultCoordinates(cfg *AppConfig) error {
	latStr := os.Getenv("WEATHER_LATITUDE")
	lonStr := os.Getenv("WEATHER_LONGITUDE")

	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_LATITUDE: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_LONGITUDE: %w", err)
		}
		cfg.Latitude = lat
		cfg.Longitude = lon
		return nil
	}

	city := os.Getenv("WEATHER_LOCATION_CITY")
	geocoderKey := os.Getenv("GEOCODER_API_KEY")
	if city == "" || geocoderKey == "" {
		// No defaults configured; requests must carry coordinates.
		return nil
	}

	lat, lon, err := geocode.Resolve(geocoderKey, city, os.Getenv("WEATHER_LOCATION_COUNTRY"))
	if err != nil {
		return err
	}

	log.Printf("INFO: resolved default location %q to %.4f,%.4f", city, lat, lon)
	cfg.Latitude = lat
	cfg.Longitude = lon
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
