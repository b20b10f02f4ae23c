package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// defaultHTTPClient is used when a provider is constructed without one.
var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// StatusError is returned when the upstream answers with a non-2xx status.
// Status mirrors http.Response.Status, e.g. "401 Unauthorized".
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %s", e.Status)
}

// getJSON issues a single GET and decodes the JSON body into out. One
// request per call; there are no retries and no backoff. Non-2xx responses
// return a *StatusError, transport and decode failures are wrapped with the
// fetch context.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch weather data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to fetch weather data: %w", err)
	}
	return nil
}

// summaryOrUnknown formats a vendor summary for display, substituting
// "Unknown" when the vendor sent none.
func summaryOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
