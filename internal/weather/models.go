package weather

import (
	"time"
)

// Condition is the normalized weather condition shared by every provider
// adapter, so downstream overlay rendering stays provider-agnostic.
// Vendor icon codes map onto this set; codes a provider does not recognize
// become ConditionUnknown, never an absent value.
type Condition string

const (
	ConditionUnknown           Condition = "unknown"
	ConditionSunny             Condition = "sunny"
	ConditionClearNight        Condition = "clear-night"
	ConditionRainy             Condition = "rainy"
	ConditionSnowy             Condition = "snowy"
	ConditionWindy             Condition = "windy"
	ConditionFoggy             Condition = "foggy"
	ConditionCloudy            Condition = "cloudy"
	ConditionPartlyCloudy      Condition = "partly-cloudy"
	ConditionPartlyCloudyNight Condition = "partly-cloudy-night"
	ConditionHail              Condition = "hail"
	ConditionLightning         Condition = "lightning"
	ConditionExceptional       Condition = "exceptional"
)

// UnitSystem is the measurement system requested from the upstream API.
type UnitSystem string

const (
	UnitsUS UnitSystem = "us"
	UnitsSI UnitSystem = "si"
	UnitsCA UnitSystem = "ca"
	UnitsUK UnitSystem = "uk2"
)

// Label returns the display label for the unit system. Unrecognized codes
// are labeled imperial, matching the default request units.
func (u UnitSystem) Label() string {
	switch u {
	case UnitsSI, UnitsCA:
		return "metric"
	case UnitsUK:
		return "hybrid"
	default:
		return "imperial"
	}
}

// Location identifies the place a response describes. Values come from the
// provider response rather than the request config; the upstream may round
// or adjust the requested coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// CurrentConditions is the normalized view of the weather right now.
// Humidity and CloudCover are percentages (0-100) regardless of how the
// vendor reports them.
type CurrentConditions struct {
	Summary             string    `json:"summary"`
	Condition           Condition `json:"condition"`
	IconURL             string    `json:"iconUrl"`
	Temperature         float64   `json:"temperature"`
	ApparentTemperature float64   `json:"apparentTemperature"`
	Humidity            float64   `json:"humidity"`
	CloudCover          float64   `json:"cloudCover"`
	Pressure            float64   `json:"pressure"`
	WindSpeed           float64   `json:"windSpeed"`
	WindGust            *float64  `json:"windGust,omitempty"`
	WindBearing         float64   `json:"windBearing"`
	UVIndex             float64   `json:"uvIndex"`
	Visibility          float64   `json:"visibility"`
}

// DailyForecast is the normalized forecast for a single calendar day.
type DailyForecast struct {
	Date           time.Time `json:"date"` // UTC midnight of the forecast day
	Summary        string    `json:"summary"`
	Condition      Condition `json:"condition"`
	IconURL        string    `json:"iconUrl"`
	TemperatureMax float64   `json:"temperatureMax"`
	TemperatureMin float64   `json:"temperatureMin"`
	Humidity       float64   `json:"humidity"`
	CloudCover     float64   `json:"cloudCover"`
	WindSpeed      float64   `json:"windSpeed"`
	WindGust       *float64  `json:"windGust,omitempty"`
	UVIndex        float64   `json:"uvIndex"`
}

// MaxDailyEntries caps the daily forecast length. Vendors return more, but
// the overlay renders at most one week.
const MaxDailyEntries = 7

// WeatherData is the sole output of a provider fetch: current conditions,
// up to MaxDailyEntries daily entries in the order the vendor sent them,
// and the location the vendor resolved. Units holds the display label for
// the measurement system ("imperial", "metric", "hybrid").
type WeatherData struct {
	Provider string            `json:"provider"`
	Current  CurrentConditions `json:"current"`
	Daily    []DailyForecast   `json:"daily"`
	Location Location          `json:"location"`
	Units    string            `json:"units"`
}
