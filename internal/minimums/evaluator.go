package minimums

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/miriamsimone/upwind/internal/weather"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
	windPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*kts`)
)

// Passes reports whether a reading satisfies the minimums for a
// training level. Visibility and wind are re-parsed out of the
// reading's formatted summaries; a field that cannot be parsed passes
// its own sub-check (fail-open per field), so an unparsable field never
// by itself creates a false conflict. The category check is never
// skipped.
func Passes(level TrainingLevel, reading weather.Reading) bool {
	rule := RuleFor(level)

	if vis, ok := parseVisibility(reading.Visibility); ok && vis < rule.MinVisibilityMiles {
		return false
	}

	if knots, ok := parseWindKnots(reading.Wind); ok && knots > rule.MaxWindKnots {
		return false
	}

	return rule.AllowedCategories[reading.Category]
}

// parseVisibility extracts the leading numeric token of a formatted
// visibility summary ("5.0 sm")
func parseVisibility(summary string) (float64, bool) {
	token := numberPattern.FindString(summary)
	if token == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseWindKnots extracts the wind speed from a formatted wind summary
// ("272° at 9 kts"). "Calm" is zero wind.
func parseWindKnots(summary string) (float64, bool) {
	if strings.EqualFold(strings.TrimSpace(summary), "calm") {
		return 0, true
	}
	match := windPattern.FindStringSubmatch(summary)
	if match == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
