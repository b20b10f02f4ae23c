package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-overlay-service/internal/weather"
)

// PirateWeatherProvider implements the weather.Provider interface for
// Pirate Weather (a Dark Sky compatible forecast API). The API key and
// coordinates travel in the URL path, the unit system in the query string.
type PirateWeatherProvider struct {
	name    string
	baseURL string
	client  *http.Client
}

var _ weather.Provider = (*PirateWeatherProvider)(nil)

func NewPirateWeatherProvider(client *http.Client) *PirateWeatherProvider {
	if client == nil {
		client = defaultHTTPClient
	}

	return &PirateWeatherProvider{
		name:    "pirateweather",
		baseURL: "https://api.pirateweather.net",
		client:  client,
	}
}

func (p *PirateWeatherProvider) Name() string {
	return p.name
}

// DefaultConfig returns a config skeleton with no key, no coordinates, and
// US units.
func (p *PirateWeatherProvider) DefaultConfig() weather.Config {
	return weather.Config{Units: weather.UnitsUS}
}

// Fetch retrieves and normalizes the forecast for the configured
// coordinates. It validates the config before any network I/O and issues
// exactly one GET.
func (p *PirateWeatherProvider) Fetch(ctx context.Context, cfg weather.Config) (*weather.WeatherData, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	units := cfg.Units
	if units == "" {
		units = weather.UnitsUS
	}

	u := fmt.Sprintf("%s/forecast/%s/%f,%f?units=%s",
		p.baseURL, url.PathEscape(cfg.APIKey), cfg.Latitude, cfg.Longitude, units)

	var payload pirateResponse
	if err := getJSON(ctx, p.client, u, &payload); err != nil {
		return nil, err
	}

	daily := make([]weather.DailyForecast, 0, weather.MaxDailyEntries)
	for i, d := range payload.Daily.Data {
		if i >= weather.MaxDailyEntries {
			break
		}
		daily = append(daily, normalizePirateDaily(d))
	}

	return &weather.WeatherData{
		Provider: p.name,
		Current:  normalizePirateCurrent(payload.Currently),
		Daily:    daily,
		Location: weather.Location{
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
			Timezone:  payload.Timezone,
		},
		Units: units.Label(),
	}, nil
}

// pirateResponse mirrors the upstream forecast JSON. Only the fields we
// consume are declared.
type pirateResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Currently pirateDataPoint `json:"currently"`
	Daily     struct {
		Data []pirateDataPoint `json:"data"`
	} `json:"daily"`
}

// pirateDataPoint is the vendor's shared shape for current and daily
// entries. Humidity and CloudCover arrive as 0-1 fractions. Daily entries
// carry TemperatureMax/Min; older responses used TemperatureHigh/Low.
type pirateDataPoint struct {
	Time                int64    `json:"time"`
	Summary             string   `json:"summary"`
	Icon                string   `json:"icon"`
	Temperature         float64  `json:"temperature"`
	ApparentTemperature float64  `json:"apparentTemperature"`
	TemperatureMax      float64  `json:"temperatureMax"`
	TemperatureMin      float64  `json:"temperatureMin"`
	TemperatureHigh     float64  `json:"temperatureHigh"`
	TemperatureLow      float64  `json:"temperatureLow"`
	Humidity            float64  `json:"humidity"`
	CloudCover          float64  `json:"cloudCover"`
	Pressure            float64  `json:"pressure"`
	WindSpeed           float64  `json:"windSpeed"`
	WindGust            *float64 `json:"windGust"`
	WindBearing         float64  `json:"windBearing"`
	UVIndex             float64  `json:"uvIndex"`
	Visibility          float64  `json:"visibility"`
}

func normalizePirateCurrent(raw pirateDataPoint) weather.CurrentConditions {
	return weather.CurrentConditions{
		Summary:             summaryOrUnknown(raw.Summary),
		Condition:           mapPirateCondition(raw.Icon),
		IconURL:             pirateIconURL(raw.Icon),
		Temperature:         raw.Temperature,
		ApparentTemperature: raw.ApparentTemperature,
		Humidity:            raw.Humidity * 100,
		CloudCover:          raw.CloudCover * 100,
		Pressure:            raw.Pressure,
		WindSpeed:           raw.WindSpeed,
		WindGust:            raw.WindGust,
		WindBearing:         raw.WindBearing,
		UVIndex:             raw.UVIndex,
		Visibility:          raw.Visibility,
	}
}

func normalizePirateDaily(raw pirateDataPoint) weather.DailyForecast {
	tempMax := raw.TemperatureMax
	if tempMax == 0 {
		tempMax = raw.TemperatureHigh
	}
	tempMin := raw.TemperatureMin
	if tempMin == 0 {
		tempMin = raw.TemperatureLow
	}

	ts := time.Unix(raw.Time, 0).UTC()

	return weather.DailyForecast{
		Date:           time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Summary:        summaryOrUnknown(raw.Summary),
		Condition:      mapPirateCondition(raw.Icon),
		IconURL:        pirateIconURL(raw.Icon),
		TemperatureMax: tempMax,
		TemperatureMin: tempMin,
		Humidity:       raw.Humidity * 100,
		CloudCover:     raw.CloudCover * 100,
		WindSpeed:      raw.WindSpeed,
		WindGust:       raw.WindGust,
		UVIndex:        raw.UVIndex,
	}
}

// pirateConditions maps the vendor icon vocabulary onto the unified
// condition set. It is total for the vendor's documented codes; anything
// else resolves to ConditionUnknown.
var pirateConditions = map[string]weather.Condition{
	"clear-day":           weather.ConditionSunny,
	"clear-night":         weather.ConditionClearNight,
	"rain":                weather.ConditionRainy,
	"snow":                weather.ConditionSnowy,
	"sleet":               weather.ConditionSnowy,
	"wind":                weather.ConditionWindy,
	"fog":                 weather.ConditionFoggy,
	"cloudy":              weather.ConditionCloudy,
	"partly-cloudy-day":   weather.ConditionPartlyCloudy,
	"partly-cloudy-night": weather.ConditionPartlyCloudyNight,
	"hail":                weather.ConditionHail,
	"thunderstorm":        weather.ConditionLightning,
	"tornado":             weather.ConditionExceptional,
}

func mapPirateCondition(icon string) weather.Condition {
	if cond, ok := pirateConditions[icon]; ok {
		return cond
	}
	return weather.ConditionUnknown
}

const pirateIconBase = "https://basmilius.github.io/weather-icons/production/fill/all"

// pirateIcons is display-only and independent of pirateConditions: an
// unmapped condition resolves to ConditionUnknown while an unmapped icon
// resolves to the cloudy image, never an error.
var pirateIcons = map[string]string{
	"clear-day":           pirateIconBase + "/clear-day.svg",
	"clear-night":         pirateIconBase + "/clear-night.svg",
	"rain":                pirateIconBase + "/rain.svg",
	"snow":                pirateIconBase + "/snow.svg",
	"sleet":               pirateIconBase + "/sleet.svg",
	"wind":                pirateIconBase + "/wind.svg",
	"fog":                 pirateIconBase + "/fog.svg",
	"cloudy":              pirateIconBase + "/cloudy.svg",
	"partly-cloudy-day":   pirateIconBase + "/partly-cloudy-day.svg",
	"partly-cloudy-night": pirateIconBase + "/partly-cloudy-night.svg",
	"hail":                pirateIconBase + "/hail.svg",
	"thunderstorm":        pirateIconBase + "/thunderstorms.svg",
	"tornado":             pirateIconBase + "/tornado.svg",
}

func pirateIconURL(icon string) string {
	if u, ok := pirateIcons[icon]; ok {
		return u
	}
	return pirateIcons["cloudy"]
}
