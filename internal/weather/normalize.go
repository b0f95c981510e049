package weather

import (
	"fmt"
	"math"
	"strings"
)

const (
	// mphToKnots converts the provider's miles-per-hour wind speeds
	mphToKnots = 0.868976
	// metersPerStatuteMile converts provider visibility to statute miles
	metersPerStatuteMile = 1609.34
)

// Normalize maps one raw provider record into a canonical Reading.
// Pure mapping with no side effects; absent optional fields degrade to
// defaults ("Calm" wind, "N/A" visibility, "Clear" sky) instead of
// failing.
func Normalize(raw RawConditions) Reading {
	var temperature float64
	if raw.TemperatureF != nil {
		temperature = *raw.TemperatureF
	}

	wind := "Calm"
	if raw.WindMPH != nil {
		knots := int(math.Round(*raw.WindMPH * mphToKnots))
		degrees := 0
		if raw.WindDeg != nil {
			degrees = int(math.Round(*raw.WindDeg))
		}
		wind = fmt.Sprintf("%d° at %d kts", degrees, knots)
	}

	// Missing visibility is reported as N/A but treated as fully clear
	// for category purposes.
	visibility := "N/A"
	var visibilityMiles *float64
	if raw.VisibilityM != nil {
		miles := *raw.VisibilityM / metersPerStatuteMile
		visibilityMiles = &miles
		visibility = fmt.Sprintf("%.1f sm", miles)
	}

	return Reading{
		TemperatureF: temperature,
		Wind:         wind,
		Visibility:   visibility,
		Sky:          skySummary(raw.Conditions),
		Category:     Classify(visibilityMiles, raw.CloudCover),
		ObservedAt:   raw.observedTime(),
	}
}

// skySummary joins the provider's condition descriptions, capitalizing
// each word initial. No descriptions means clear skies.
func skySummary(conditions []string) string {
	if len(conditions) == 0 {
		return "Clear"
	}

	titled := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		titled = append(titled, titleWords(cond))
	}
	return strings.Join(titled, ", ")
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
