package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/miriamsimone/upwind/internal/provider"
	"github.com/miriamsimone/upwind/pkg/logger"
	"github.com/sony/gobreaker"
)

const providerName = "openweather"

// Provider exposes the external weather collaborator contract. The
// transport behind it is out of scope for consumers; they only see raw
// records.
type Provider interface {
	// FetchCurrent returns the current observation at a coordinate
	FetchCurrent(ctx context.Context, lat, lon float64) (*RawConditions, error)
	// FetchForecast returns the ordered forecast steps at a coordinate
	FetchForecast(ctx context.Context, lat, lon float64) ([]RawConditions, error)
}

// Client fetches weather from an OpenWeather-style API. Requests are
// retried with exponential backoff behind a circuit breaker; expiry of
// the per-call timeout is a recoverable failure surfaced as a
// provider error.
type Client struct {
	apiKey     string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger
}

// NewClient creates a weather API client
func NewClient(apiKey, baseURL string, timeout time.Duration, maxRetries int, log *logger.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
		logger:  log.Named("weather-client"),
	}
}

// FetchCurrent fetches the current observation for a coordinate
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (*RawConditions, error) {
	body, err := c.get(ctx, "/weather", lat, lon)
	if err != nil {
		return nil, err
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, provider.NewError(providerName, fmt.Errorf("failed to decode current weather: %w", err))
	}

	raw := payload.toRaw()
	return &raw, nil
}

// FetchForecast fetches the ordered forecast steps for a coordinate
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) ([]RawConditions, error) {
	body, err := c.get(ctx, "/forecast", lat, lon)
	if err != nil {
		return nil, err
	}

	var payload forecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, provider.NewError(providerName, fmt.Errorf("failed to decode forecast: %w", err))
	}

	entries := make([]RawConditions, 0, len(payload.List))
	for _, step := range payload.List {
		entries = append(entries, step.toRaw())
	}
	return entries, nil
}

// get executes a GET with retries, backoff and the circuit breaker
func (c *Client) get(ctx context.Context, path string, lat, lon float64) ([]byte, error) {
	if c.apiKey == "" {
		return nil, &provider.ConfigError{Setting: "weather API key"}
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lon))
	values.Set("units", "imperial")
	values.Set("appid", c.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	retryDelay := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		body, err := c.execute(ctx, endpoint)
		if err == nil {
			return body, nil
		}

		// An open breaker means the provider is down; retrying inside
		// this call would only spin.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, provider.NewError(providerName, err)
		}

		lastErr = err
		if attempt == c.maxRetries {
			break
		}

		c.logger.Warn("Retrying weather request",
			logger.String("path", path),
			logger.Int("attempt", attempt+1),
			logger.Int("max_attempts", c.maxRetries+1),
			logger.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
			retryDelay *= 2
		}
	}

	var provErr *provider.Error
	if errors.As(lastErr, &provErr) {
		return nil, lastErr
	}
	return nil, provider.NewError(providerName, lastErr)
}

// execute performs one request attempt through the circuit breaker
func (c *Client) execute(ctx context.Context, endpoint string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, provider.NewStatusError(providerName, resp.StatusCode, string(body))
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// currentPayload is the provider's current-weather wire shape. Only the
// fields we consume are declared; everything is optional.
type currentPayload struct {
	Dt   *int64 `json:"dt"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Wind *struct {
		Deg   *float64 `json:"deg"`
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Clouds     *struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p currentPayload) toRaw() RawConditions {
	raw := RawConditions{
		Timestamp:   p.Dt,
		VisibilityM: p.Visibility,
	}
	if p.Main != nil {
		raw.TemperatureF = p.Main.Temp
	}
	if p.Wind != nil {
		raw.WindDeg = p.Wind.Deg
		raw.WindMPH = p.Wind.Speed
	}
	if p.Clouds != nil {
		raw.CloudCover = p.Clouds.All
	}
	for _, w := range p.Weather {
		if w.Description != "" {
			raw.Conditions = append(raw.Conditions, w.Description)
		}
	}
	return raw
}

// forecastPayload is the provider's forecast wire shape
type forecastPayload struct {
	List []currentPayload `json:"list"`
}

// LocationKey produces a stable cache/grouping key for a coordinate
func LocationKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", roundCoord(lat), roundCoord(lon))
}

func roundCoord(v float64) float64 {
	return math.Round(v*10000) / 10000
}
