package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-overlay-service/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := service.Fetch(c.Context(), req.Provider, req.toOptions())
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrProviderNotFound):
				return fiber.NewError(fiber.StatusNotFound, "unknown weather provider")
			case errors.Is(err, weather.ErrInvalidConfig):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				// Upstream trouble: non-2xx status or an unparseable body.
				return fiber.NewError(fiber.StatusBadGateway, err.Error())
			}
		}

		return c.JSON(data)
	})

	v1.Get("/providers", func(c *fiber.Ctx) error {
		names := service.Providers()

		// Per-provider config skeletons; defaults never carry credentials.
		defaults := make(map[string]weather.Config, len(names))
		for _, name := range names {
			cfg, err := service.DefaultConfigFor(name)
			if err != nil {
				continue
			}
			defaults[name] = cfg
		}

		return c.JSON(fiber.Map{
			"providers": names,
			"defaults":  defaults,
			"default":   service.DefaultProvider(),
		})
	})
}

// weatherQuery holds query parameters for the weather endpoint. Coordinates
// are optional; omitted ones keep the operator-configured defaults.
type weatherQuery struct {
	Provider string
	Lat      float64
	Lon      float64
	Units    string `validate:"omitempty,oneof=us si ca uk2"`
}

func (q weatherQuery) toOptions() weather.FetchOptions {
	return weather.FetchOptions{
		Latitude:  q.Lat,
		Longitude: q.Lon,
		Units:     weather.UnitSystem(q.Units),
	}
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery

	q.Provider = c.Query("provider")
	q.Units = c.Query("units")

	var err error
	if q.Lat, err = parseCoord(c.Query("lat")); err != nil {
		return q, errors.New("invalid lat; must be a number")
	}
	if q.Lon, err = parseCoord(c.Query("lon")); err != nil {
		return q, errors.New("invalid lon; must be a number")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// parseCoord parses an optional coordinate parameter; empty means unset.
func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
