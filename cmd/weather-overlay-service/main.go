package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-overlay-service/internal/api/http"
	"github.com/i474232898/weather-overlay-service/internal/config"
	"github.com/i474232898/weather-overlay-service/internal/weather"
	"github.com/i474232898/weather-overlay-service/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	pirate := providers.NewPirateWeatherProvider(httpClient)
	openWeather := providers.NewOpenWeatherProvider(httpClient)

	registry := weather.NewRegistry()
	registry.Register(pirate)
	registry.Register(openWeather)

	if _, err := registry.Get(cfg.DefaultProvider); err != nil {
		log.Fatalf("WEATHER_PROVIDER %q is not a registered provider", cfg.DefaultProvider)
	}

	// Operator-supplied base config per provider; requests may override
	// coordinates and units.
	baseConfigs := map[string]weather.Config{
		pirate.Name(): {
			APIKey:    cfg.PirateWeatherAPIKey,
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			Units:     cfg.Units,
		},
		openWeather.Name(): {
			APIKey:    cfg.OpenWeatherAPIKey,
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			Units:     cfg.Units,
		},
	}

	service := weather.NewService(registry, baseConfigs, cfg.DefaultProvider)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-overlay-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-overlay-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	log.Printf("INFO: listening on :%s (default provider %s)", cfg.Port, cfg.DefaultProvider)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
