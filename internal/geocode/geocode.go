// Package geocode resolves operator-configured place names to coordinates
// at startup, so deployments can be configured with a city instead of raw
// latitude/longitude.
package geocode

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// Resolve looks up the coordinates for a city (optionally qualified by
// country) via the Google Geocoding API. The geocoder package keeps the API
// key in package state, so Resolve sets it on every call.
func Resolve(apiKey, city, country string) (lat, lon float64, err error) {
	geocoder.ApiKey = apiKey

	address := geocoder.Address{
		City:    city,
		Country: country,
	}

	location, err := geocoder.Geocoding(address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", city, err)
	}

	return location.Latitude, location.Longitude, nil
}
