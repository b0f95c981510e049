package weather

import (
	"context"
	"sync"
	"time"

	"github.com/miriamsimone/upwind/pkg/logger"
)

// Service provides normalized weather to the rest of the system,
// caching forecasts per location so repeated conflict scans inside the
// expiry window reuse provider responses.
type Service struct {
	provider    Provider
	cacheExpiry time.Duration
	logger      *logger.Logger

	mu        sync.RWMutex
	forecasts map[string]*cachedForecast
}

type cachedForecast struct {
	entries   []RawConditions
	expiresAt time.Time
}

// NewService creates a weather service backed by the given provider
func NewService(p Provider, cacheExpiry time.Duration, log *logger.Logger) *Service {
	return &Service{
		provider:    p,
		cacheExpiry: cacheExpiry,
		logger:      log.Named("weather-service"),
		forecasts:   make(map[string]*cachedForecast),
	}
}

// Current fetches and normalizes the current observation at a coordinate
func (s *Service) Current(ctx context.Context, lat, lon float64) (*Reading, error) {
	raw, err := s.provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	reading := Normalize(*raw)
	return &reading, nil
}

// DailyForecast fetches the forecast at a coordinate and reduces it to
// at most days daily readings. Raw forecast steps are cached per
// location; the reduction runs on every call so different day counts
// share one fetch.
func (s *Service) DailyForecast(ctx context.Context, lat, lon float64, days int) ([]Reading, error) {
	entries, err := s.forecastEntries(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return DailySummaries(entries, days), nil
}

func (s *Service) forecastEntries(ctx context.Context, lat, lon float64) ([]RawConditions, error) {
	key := LocationKey(lat, lon)

	s.mu.RLock()
	cached, ok := s.forecasts[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return cached.entries, nil
	}

	entries, err := s.provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched forecast",
		logger.String("location", key),
		logger.Int("entries", len(entries)),
	)

	s.mu.Lock()
	s.forecasts[key] = &cachedForecast{
		entries:   entries,
		expiresAt: time.Now().Add(s.cacheExpiry),
	}
	s.mu.Unlock()

	return entries, nil
}
