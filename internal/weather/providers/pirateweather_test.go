package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-overlay-service/internal/weather"
)

const pirateSampleResponse = `{
	"latitude": 40.0,
	"longitude": -105.0,
	"timezone": "America/Denver",
	"currently": {
		"time": 1756047600,
		"summary": "Clear",
		"icon": "clear-day",
		"temperature": 72.5,
		"apparentTemperature": 74.1,
		"humidity": 0.5,
		"cloudCover": 0.25,
		"pressure": 1013.2,
		"windSpeed": 5.5,
		"windGust": 10.2,
		"windBearing": 270,
		"uvIndex": 6,
		"visibility": 10
	},
	"daily": {
		"data": [
			{
				"time": 1755993600,
				"summary": "Rain likely",
				"icon": "rain",
				"temperatureMax": 71.5,
				"temperatureMin": 50.1,
				"temperatureHigh": 69.0,
				"temperatureLow": 48.9,
				"humidity": 0.8,
				"cloudCover": 0.9,
				"windSpeed": 4.1,
				"uvIndex": 5
			},
			{
				"time": 1756087200,
				"icon": "partly-cloudy-day",
				"temperatureHigh": 75.2,
				"temperatureLow": 52.0,
				"humidity": 0.6,
				"cloudCover": 0.4
			}
		]
	}
}`

func newPirateTestProvider(t *testing.T, handler http.HandlerFunc) *PirateWeatherProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewPirateWeatherProvider(srv.Client())
	p.baseURL = srv.URL
	return p
}

func validPirateConfig() weather.Config {
	return weather.Config{
		APIKey:    "test-key",
		Latitude:  40.0,
		Longitude: -105.0,
		Units:     weather.UnitsUS,
	}
}

func TestPirateWeatherDefaultConfig(t *testing.T) {
	p := NewPirateWeatherProvider(nil)

	cfg := p.DefaultConfig()
	if cfg.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.APIKey)
	}
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		t.Errorf("expected zero coordinates, got %v,%v", cfg.Latitude, cfg.Longitude)
	}
	if cfg.Units != weather.UnitsUS {
		t.Errorf("expected units %q, got %q", weather.UnitsUS, cfg.Units)
	}
}

// TestPirateWeatherFetchRejectsInvalidConfig verifies that validation runs
// before any network I/O: a missing key or a zero coordinate must fail
// without the upstream ever seeing a request.
func TestPirateWeatherFetchRejectsInvalidConfig(t *testing.T) {
	hits := 0
	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{}`))
	})

	cases := []struct {
		name string
		cfg  weather.Config
	}{
		{"missing api key", weather.Config{Latitude: 40.0, Longitude: -105.0}},
		{"zero latitude", weather.Config{APIKey: "test-key", Latitude: 0, Longitude: -105.0}},
		{"zero longitude", weather.Config{APIKey: "test-key", Latitude: 40.0, Longitude: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Fetch(context.Background(), tc.cfg)
			if !errors.Is(err, weather.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if hits != 0 {
		t.Fatalf("expected no upstream requests, got %d", hits)
	}
}

func TestPirateWeatherFetchNormalizesResponse(t *testing.T) {
	var gotPath, gotUnits string
	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUnits = r.URL.Query().Get("units")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pirateSampleResponse))
	})

	data, err := p.Fetch(context.Background(), validPirateConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/forecast/test-key/") {
		t.Errorf("expected api key and coordinates in path, got %q", gotPath)
	}
	if gotUnits != "us" {
		t.Errorf("expected units=us, got %q", gotUnits)
	}

	if data.Provider != "pirateweather" {
		t.Errorf("expected provider pirateweather, got %q", data.Provider)
	}

	cur := data.Current
	if cur.Condition != weather.ConditionSunny {
		t.Errorf("expected condition %q, got %q", weather.ConditionSunny, cur.Condition)
	}
	if cur.Humidity != 50 {
		t.Errorf("expected humidity 50, got %v", cur.Humidity)
	}
	if cur.CloudCover != 25 {
		t.Errorf("expected cloud cover 25, got %v", cur.CloudCover)
	}
	if cur.Summary != "Clear" {
		t.Errorf("expected summary Clear, got %q", cur.Summary)
	}
	if cur.Temperature != 72.5 || cur.ApparentTemperature != 74.1 {
		t.Errorf("expected temperatures passed through, got %v/%v", cur.Temperature, cur.ApparentTemperature)
	}
	if cur.WindGust == nil || *cur.WindGust != 10.2 {
		t.Errorf("expected wind gust 10.2, got %v", cur.WindGust)
	}
	if cur.IconURL != pirateIconBase+"/clear-day.svg" {
		t.Errorf("unexpected icon url %q", cur.IconURL)
	}

	if data.Units != "imperial" {
		t.Errorf("expected units label imperial, got %q", data.Units)
	}

	loc := data.Location
	if loc.Latitude != 40.0 || loc.Longitude != -105.0 || loc.Timezone != "America/Denver" {
		t.Errorf("expected location from response body, got %+v", loc)
	}

	if len(data.Daily) != 2 {
		t.Fatalf("expected 2 daily entries, got %d", len(data.Daily))
	}

	day := data.Daily[0]
	if day.Condition != weather.ConditionRainy {
		t.Errorf("expected daily condition %q, got %q", weather.ConditionRainy, day.Condition)
	}
	if day.Humidity != 80 || day.CloudCover != 90 {
		t.Errorf("expected rescaled daily humidity/cloud cover, got %v/%v", day.Humidity, day.CloudCover)
	}
	wantDate := time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)
	if !day.Date.Equal(wantDate) {
		t.Errorf("expected date %v, got %v", wantDate, day.Date)
	}
	if day.WindGust != nil {
		t.Errorf("expected absent wind gust to stay absent, got %v", *day.WindGust)
	}

	// The second entry's timestamp is 02:00 UTC; the date must still land
	// on that day's midnight.
	wantDate = time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	if !data.Daily[1].Date.Equal(wantDate) {
		t.Errorf("expected date %v, got %v", wantDate, data.Daily[1].Date)
	}
	if data.Daily[1].Summary != "Unknown" {
		t.Errorf("expected empty vendor summary to become Unknown, got %q", data.Daily[1].Summary)
	}
}

func TestPirateWeatherTemperatureFallback(t *testing.T) {
	data := fetchPirateDaily(t, `{
		"time": 1755993600,
		"icon": "rain",
		"temperatureMax": 71.5,
		"temperatureMin": 50.1,
		"temperatureHigh": 69.0,
		"temperatureLow": 48.9
	}`)
	if data.TemperatureMax != 71.5 {
		t.Errorf("expected temperatureMax to win over temperatureHigh, got %v", data.TemperatureMax)
	}
	if data.TemperatureMin != 50.1 {
		t.Errorf("expected temperatureMin to win over temperatureLow, got %v", data.TemperatureMin)
	}

	data = fetchPirateDaily(t, `{
		"time": 1755993600,
		"icon": "rain",
		"temperatureHigh": 69.0,
		"temperatureLow": 48.9
	}`)
	if data.TemperatureMax != 69.0 {
		t.Errorf("expected fallback to temperatureHigh, got %v", data.TemperatureMax)
	}
	if data.TemperatureMin != 48.9 {
		t.Errorf("expected fallback to temperatureLow, got %v", data.TemperatureMin)
	}
}

// fetchPirateDaily serves a response with a single daily entry and returns
// its normalized form.
func fetchPirateDaily(t *testing.T, entry string) weather.DailyForecast {
	t.Helper()

	body := fmt.Sprintf(`{"latitude": 40.0, "longitude": -105.0, "timezone": "UTC",
		"currently": {"icon": "rain"}, "daily": {"data": [%s]}}`, entry)

	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	data, err := p.Fetch(context.Background(), validPirateConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Daily) != 1 {
		t.Fatalf("expected 1 daily entry, got %d", len(data.Daily))
	}
	return data.Daily[0]
}

func TestPirateWeatherDailyClampedToSevenEntries(t *testing.T) {
	entries := make([]string, 0, 9)
	for i := 0; i < 9; i++ {
		entries = append(entries, fmt.Sprintf(`{"time": %d, "icon": "rain", "temperatureMax": %d}`,
			1755993600+i*86400, 60+i))
	}
	body := fmt.Sprintf(`{"latitude": 40.0, "longitude": -105.0, "timezone": "UTC",
		"currently": {"icon": "rain"}, "daily": {"data": [%s]}}`, strings.Join(entries, ","))

	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	data, err := p.Fetch(context.Background(), validPirateConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.Daily) != weather.MaxDailyEntries {
		t.Fatalf("expected %d daily entries, got %d", weather.MaxDailyEntries, len(data.Daily))
	}
	for i, day := range data.Daily {
		if day.TemperatureMax != float64(60+i) {
			t.Errorf("daily entry %d out of order: temperatureMax %v", i, day.TemperatureMax)
		}
	}
}

func TestPirateWeatherConditionMapping(t *testing.T) {
	cases := []struct {
		icon string
		want weather.Condition
	}{
		{"clear-day", weather.ConditionSunny},
		{"clear-night", weather.ConditionClearNight},
		{"rain", weather.ConditionRainy},
		{"snow", weather.ConditionSnowy},
		{"sleet", weather.ConditionSnowy},
		{"wind", weather.ConditionWindy},
		{"fog", weather.ConditionFoggy},
		{"cloudy", weather.ConditionCloudy},
		{"partly-cloudy-day", weather.ConditionPartlyCloudy},
		{"partly-cloudy-night", weather.ConditionPartlyCloudyNight},
		{"hail", weather.ConditionHail},
		{"thunderstorm", weather.ConditionLightning},
		{"tornado", weather.ConditionExceptional},
		{"unknown-code", weather.ConditionUnknown},
		{"", weather.ConditionUnknown},
	}

	for _, tc := range cases {
		if got := mapPirateCondition(tc.icon); got != tc.want {
			t.Errorf("icon %q: expected %q, got %q", tc.icon, tc.want, got)
		}
	}
}

func TestPirateWeatherIconURLFallback(t *testing.T) {
	if got := pirateIconURL("thunderstorm"); got != pirateIconBase+"/thunderstorms.svg" {
		t.Errorf("unexpected thunderstorm icon url %q", got)
	}
	want := pirateIconBase + "/cloudy.svg"
	if got := pirateIconURL("unknown-code"); got != want {
		t.Errorf("expected fallback to cloudy image, got %q", got)
	}
}

func TestPirateWeatherUpstreamStatusError(t *testing.T) {
	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	_, err := p.Fetch(context.Background(), validPirateConfig())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("expected code 401, got %d", statusErr.Code)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected message to contain the status code, got %q", err.Error())
	}
}

func TestPirateWeatherMalformedBody(t *testing.T) {
	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := p.Fetch(context.Background(), validPirateConfig())
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !strings.HasPrefix(err.Error(), "failed to fetch weather data") {
		t.Errorf("expected fetch failure prefix, got %q", err.Error())
	}
}

func TestPirateWeatherDefaultUnits(t *testing.T) {
	var gotUnits string
	p := newPirateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotUnits = r.URL.Query().Get("units")
		w.Write([]byte(pirateSampleResponse))
	})

	cfg := validPirateConfig()
	cfg.Units = ""

	data, err := p.Fetch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUnits != "us" {
		t.Errorf("expected default units=us, got %q", gotUnits)
	}
	if data.Units != "imperial" {
		t.Errorf("expected units label imperial, got %q", data.Units)
	}
}
