package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-overlay-service/internal/weather"
)

// OpenWeatherProvider implements the weather.Provider interface for the
// OpenWeatherMap One Call API. Humidity and cloud cover arrive as
// percentages already, so no rescale happens here.
type OpenWeatherProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(client *http.Client) *OpenWeatherProvider {
	if client == nil {
		client = defaultHTTPClient
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		client:  client,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// DefaultConfig returns a config skeleton with no key, no coordinates, and
// US units.
func (p *OpenWeatherProvider) DefaultConfig() weather.Config {
	return weather.Config{Units: weather.UnitsUS}
}

// Fetch retrieves and normalizes the One Call forecast for the configured
// coordinates.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, cfg weather.Config) (*weather.WeatherData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	units := cfg.Units
	if units == "" {
		units = weather.UnitsUS
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", cfg.Latitude))
	values.Set("lon", fmt.Sprintf("%f", cfg.Longitude))
	values.Set("appid", cfg.APIKey)
	values.Set("units", openWeatherUnits(units))
	values.Set("exclude", "minutely,hourly,alerts")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload openWeatherResponse
	if err := getJSON(ctx, p.client, u, &payload); err != nil {
		return nil, err
	}

	daily := make([]weather.DailyForecast, 0, weather.MaxDailyEntries)
	for i, d := range payload.Daily {
		if i >= weather.MaxDailyEntries {
			break
		}
		daily = append(daily, normalizeOpenWeatherDaily(d))
	}

	return &weather.WeatherData{
		Provider: p.name,
		Current:  normalizeOpenWeatherCurrent(payload.Current),
		Daily:    daily,
		Location: weather.Location{
			Latitude:  payload.Lat,
			Longitude: payload.Lon,
			Timezone:  payload.Timezone,
		},
		Units: units.Label(),
	}, nil
}

type openWeatherSummary struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type openWeatherCurrent struct {
	Temp       float64              `json:"temp"`
	FeelsLike  float64              `json:"feels_like"`
	Pressure   float64              `json:"pressure"`
	Humidity   float64              `json:"humidity"`
	Clouds     float64              `json:"clouds"`
	UVI        float64              `json:"uvi"`
	Visibility float64              `json:"visibility"`
	WindSpeed  float64              `json:"wind_speed"`
	WindDeg    float64              `json:"wind_deg"`
	WindGust   *float64             `json:"wind_gust"`
	Weather    []openWeatherSummary `json:"weather"`
}

type openWeatherDaily struct {
	Dt      int64  `json:"dt"`
	Summary string `json:"summary"`
	Temp    struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Humidity  float64              `json:"humidity"`
	Clouds    float64              `json:"clouds"`
	WindSpeed float64              `json:"wind_speed"`
	WindGust  *float64             `json:"wind_gust"`
	UVI       float64              `json:"uvi"`
	Weather   []openWeatherSummary `json:"weather"`
}

type openWeatherResponse struct {
	Lat      float64            `json:"lat"`
	Lon      float64            `json:"lon"`
	Timezone string             `json:"timezone"`
	Current  openWeatherCurrent `json:"current"`
	Daily    []openWeatherDaily `json:"daily"`
}

func normalizeOpenWeatherCurrent(raw openWeatherCurrent) weather.CurrentConditions {
	w := firstOpenWeatherSummary(raw.Weather)

	return weather.CurrentConditions{
		Summary:             summaryOrUnknown(w.Description),
		Condition:           mapOpenWeatherIcon(w.Icon),
		IconURL:             openWeatherIconURL(w.Icon),
		Temperature:         raw.Temp,
		ApparentTemperature: raw.FeelsLike,
		Humidity:            raw.Humidity,
		CloudCover:          raw.Clouds,
		Pressure:            raw.Pressure,
		WindSpeed:           raw.WindSpeed,
		WindGust:            raw.WindGust,
		WindBearing:         raw.WindDeg,
		UVIndex:             raw.UVI,
		Visibility:          raw.Visibility,
	}
}

func normalizeOpenWeatherDaily(raw openWeatherDaily) weather.DailyForecast {
	w := firstOpenWeatherSummary(raw.Weather)

	summary := raw.Summary
	if summary == "" {
		summary = w.Description
	}

	ts := time.Unix(raw.Dt, 0).UTC()

	return weather.DailyForecast{
		Date:           time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Summary:        summaryOrUnknown(summary),
		Condition:      mapOpenWeatherIcon(w.Icon),
		IconURL:        openWeatherIconURL(w.Icon),
		TemperatureMax: raw.Temp.Max,
		TemperatureMin: raw.Temp.Min,
		Humidity:       raw.Humidity,
		CloudCover:     raw.Clouds,
		WindSpeed:      raw.WindSpeed,
		WindGust:       raw.WindGust,
		UVIndex:        raw.UVI,
	}
}

func firstOpenWeatherSummary(items []openWeatherSummary) openWeatherSummary {
	if len(items) == 0 {
		return openWeatherSummary{}
	}
	return items[0]
}

// mapOpenWeatherIcon maps the vendor's icon codes (01d..50n) onto the
// unified condition set.
func mapOpenWeatherIcon(icon string) weather.Condition {
	switch icon {
	case "01d":
		return weather.ConditionSunny
	case "01n":
		return weather.ConditionClearNight
	case "02d", "03d":
		return weather.ConditionPartlyCloudy
	case "02n", "03n":
		return weather.ConditionPartlyCloudyNight
	case "04d", "04n":
		return weather.ConditionCloudy
	case "09d", "09n", "10d", "10n":
		return weather.ConditionRainy
	case "11d", "11n":
		return weather.ConditionLightning
	case "13d", "13n":
		return weather.ConditionSnowy
	case "50d", "50n":
		return weather.ConditionFoggy
	default:
		return weather.ConditionUnknown
	}
}

// openWeatherIconURL resolves the vendor's hosted icon image. A missing
// code falls back to the broken-clouds image.
func openWeatherIconURL(icon string) string {
	if icon == "" {
		icon = "04d"
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", icon)
}

// openWeatherUnits translates the unit system into the vendor's units
// parameter. One Call has no hybrid mode; everything non-US is served
// metric.
func openWeatherUnits(u weather.UnitSystem) string {
	if u == weather.UnitsUS {
		return "imperial"
	}
	return "metric"
}
