package weather

import (
	"context"
)

// Service resolves which provider serves a request and what config it runs
// with. Base configs come from the operator (API keys, default coordinates,
// default units); callers may override coordinates and units per request.
type Service struct {
	registry        *Registry
	baseConfigs     map[string]Config
	defaultProvider string
}

// NewService creates a new Service. baseConfigs is keyed by provider name;
// defaultProvider is used when a request names no provider.
func NewService(registry *Registry, baseConfigs map[string]Config, defaultProvider string) *Service {
	return &Service{
		registry:        registry,
		baseConfigs:     baseConfigs,
		defaultProvider: defaultProvider,
	}
}

// FetchOptions are the per-request overrides accepted by Fetch. Zero-value
// fields keep the base config's values.
type FetchOptions struct {
	Latitude  float64
	Longitude float64
	Units     UnitSystem
}

// Fetch selects the named provider (empty name means the configured
// default), merges opts over the provider's base config, and delegates to
// the adapter. Exactly one provider is consulted per call.
func (s *Service) Fetch(ctx context.Context, providerName string, opts FetchOptions) (*WeatherData, error) {
	if providerName == "" {
		providerName = s.defaultProvider
	}

	p, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	cfg, ok := s.baseConfigs[providerName]
	if !ok {
		cfg = p.DefaultConfig()
	}
	if opts.Latitude != 0 {
		cfg.Latitude = opts.Latitude
	}
	if opts.Longitude != 0 {
		cfg.Longitude = opts.Longitude
	}
	if opts.Units != "" {
		cfg.Units = opts.Units
	}

	return p.Fetch(ctx, cfg)
}

// DefaultConfigFor returns the default config skeleton of the named
// provider.
func (s *Service) DefaultConfigFor(name string) (Config, error) {
	p, err := s.registry.Get(name)
	if err != nil {
		return Config{}, err
	}
	return p.DefaultConfig(), nil
}

// Providers returns the names of all registered providers in sorted order.
func (s *Service) Providers() []string {
	return s.registry.Names()
}

// DefaultProvider returns the provider name used when requests name none.
func (s *Service) DefaultProvider() string {
	return s.defaultProvider
}
