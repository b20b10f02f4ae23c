package weather

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config carries everything a provider adapter needs for one fetch:
// credentials, coordinates, and the requested unit system. It is immutable
// for the duration of the call.
//
// Latitude and Longitude carry required semantics: the validator treats the
// zero value as missing, so a config with either coordinate at 0 is
// rejected. (0, 0) is not a supported location.
type Config struct {
	APIKey    string     `json:"apiKey" validate:"required"`
	Latitude  float64    `json:"latitude" validate:"required"`
	Longitude float64    `json:"longitude" validate:"required"`
	Units     UnitSystem `json:"units" validate:"omitempty,oneof=us si ca uk2"`
}

// Validate checks the config invariants. Adapters call it before any
// network I/O so a bad config never reaches the upstream.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Provider abstracts a weather data source (e.g. Pirate Weather,
// OpenWeatherMap). DefaultConfig returns a skeleton for the operator to
// fill in. Fetch performs exactly one upstream request and returns a fully
// normalized result or an error, never a partial one.
type Provider interface {
	Name() string
	DefaultConfig() Config
	Fetch(ctx context.Context, cfg Config) (*WeatherData, error)
}
