package weather

import (
	"time"
)

// Category is the coarse flight-category classification of a reading
type Category string

const (
	// CategoryVFR means visual flight rules conditions
	CategoryVFR Category = "VFR"
	// CategoryMVFR means marginal visual flight rules conditions
	CategoryMVFR Category = "MVFR"
	// CategoryIFR means instrument flight rules conditions
	CategoryIFR Category = "IFR"
)

// RawConditions is one raw provider record (a current observation or a
// single forecast step). Every field is optional; absent fields degrade
// to defaults during normalization rather than failing. Validated once
// at the provider boundary, never re-checked downstream.
type RawConditions struct {
	TemperatureF *float64 `json:"temperature_f,omitempty"`
	WindDeg      *float64 `json:"wind_deg,omitempty"`
	WindMPH      *float64 `json:"wind_mph,omitempty"`
	VisibilityM  *float64 `json:"visibility_m,omitempty"` // meters
	CloudCover   *float64 `json:"cloud_cover,omitempty"`  // percent
	Conditions   []string `json:"conditions,omitempty"`   // free-text descriptions
	Timestamp    *int64   `json:"timestamp,omitempty"`    // unix seconds
}

// Reading is the canonical weather view consumed by the rest of the
// system. Immutable once constructed; derived entirely from one
// RawConditions record.
type Reading struct {
	TemperatureF float64   `json:"temperature_f"`
	Wind         string    `json:"wind"`
	Visibility   string    `json:"visibility"`
	Sky          string    `json:"sky"`
	Category     Category  `json:"category"`
	ObservedAt   time.Time `json:"observed_at"`
}

// observedTime resolves the record's timestamp, defaulting to now
func (r RawConditions) observedTime() time.Time {
	if r.Timestamp == nil {
		return time.Now().UTC()
	}
	return time.Unix(*r.Timestamp, 0).UTC()
}
