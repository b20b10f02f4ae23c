package weather

import "errors"

var (
	// ErrInvalidConfig is returned when a provider config fails validation.
	// It is detected before any network call is made.
	ErrInvalidConfig = errors.New("invalid provider configuration")

	// ErrProviderNotFound is returned when no provider is registered under
	// the requested name.
	ErrProviderNotFound = errors.New("weather provider not found")
)
