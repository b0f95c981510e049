package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miriamsimone/upwind/internal/provider"
	"github.com/miriamsimone/upwind/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const currentResponse = `{
	"dt": 1788372000,
	"main": {"temp": 61.2},
	"wind": {"deg": 272.4, "speed": 10.0},
	"visibility": 8046.7,
	"clouds": {"all": 40},
	"weather": [{"description": "scattered clouds"}]
}`

const forecastResponse = `{
	"list": [
		{"dt": 1788372000, "main": {"temp": 61.2}, "wind": {"deg": 270, "speed": 8}, "visibility": 10000, "clouds": {"all": 20}, "weather": [{"description": "few clouds"}]},
		{"dt": 1788382800, "main": {"temp": 64.0}, "wind": {"deg": 280, "speed": 12}, "visibility": 9000, "clouds": {"all": 65}, "weather": [{"description": "broken clouds"}]}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL, 5*time.Second, 0, logger.Nop())
}

func TestClient_fetchCurrent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		w.Write([]byte(currentResponse))
	})

	raw, err := client.FetchCurrent(context.Background(), 44.827, -93.457)
	require.NoError(t, err)
	require.NotNil(t, raw.WindMPH)
	assert.Equal(t, 10.0, *raw.WindMPH)
	require.NotNil(t, raw.VisibilityM)
	assert.Equal(t, 8046.7, *raw.VisibilityM)
	assert.Equal(t, []string{"scattered clouds"}, raw.Conditions)

	reading := Normalize(*raw)
	assert.Equal(t, "272° at 9 kts", reading.Wind)
	assert.Equal(t, "5.0 sm", reading.Visibility)
	assert.Equal(t, "Scattered Clouds", reading.Sky)
}

func TestClient_fetchForecast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(forecastResponse))
	})

	entries, err := client.FetchForecast(context.Background(), 44.827, -93.457)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"broken clouds"}, entries[1].Conditions)
}

func TestClient_missingAPIKey(t *testing.T) {
	client := NewClient("", "http://unused", 5*time.Second, 0, logger.Nop())

	_, err := client.FetchCurrent(context.Background(), 0, 0)
	var configErr *provider.ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestClient_non200CarriesProviderDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	_, err := client.FetchCurrent(context.Background(), 44.827, -93.457)
	var providerErr *provider.Error
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Contains(t, providerErr.Detail, "Invalid API key")
}

func TestClient_cancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentResponse))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchCurrent(ctx, 44.827, -93.457)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "44.8270,-93.4570", LocationKey(44.827, -93.457))
	// Sub-precision noise maps to the same key
	assert.Equal(t, LocationKey(44.827, -93.457), LocationKey(44.82700001, -93.45699999))
}

// Service-level behavior against a stubbed provider

type stubProvider struct {
	current   *RawConditions
	forecast  []RawConditions
	err       error
	forecasts int
}

func (s *stubProvider) FetchCurrent(ctx context.Context, lat, lon float64) (*RawConditions, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.current, nil
}

func (s *stubProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]RawConditions, error) {
	s.forecasts++
	if s.err != nil {
		return nil, s.err
	}
	return s.forecast, nil
}

func TestService_dailyForecastUsesCache(t *testing.T) {
	ts := time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC).Unix()
	stub := &stubProvider{forecast: []RawConditions{{Timestamp: &ts}}}
	service := NewService(stub, time.Minute, logger.Nop())

	for i := 0; i < 3; i++ {
		readings, err := service.DailyForecast(context.Background(), 44.827, -93.457, 7)
		require.NoError(t, err)
		require.Len(t, readings, 1)
	}
	assert.Equal(t, 1, stub.forecasts, "repeated calls within expiry reuse one fetch")

	// A different location is a separate cache entry
	_, err := service.DailyForecast(context.Background(), 45.145, -93.211, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.forecasts)
}

func TestService_propagatesProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	service := NewService(stub, time.Minute, logger.Nop())

	_, err := service.Current(context.Background(), 0, 0)
	assert.Error(t, err)
	_, err = service.DailyForecast(context.Background(), 0, 0, 3)
	assert.Error(t, err)
}
