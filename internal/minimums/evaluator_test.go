package minimums

import (
	"testing"

	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/stretchr/testify/assert"
)

func TestPasses_goodDayPassesAllLevels(t *testing.T) {
	reading := weather.Reading{
		Visibility: "10.0 sm",
		Wind:       "270° at 8 kts",
		Category:   weather.CategoryVFR,
	}
	for _, level := range Levels() {
		assert.True(t, Passes(level, reading), string(level))
	}
}

func TestPasses_visibilityBelowMinimum(t *testing.T) {
	reading := weather.Reading{
		Visibility: "2.5 sm",
		Wind:       "Calm",
		Category:   weather.CategoryMVFR,
	}
	assert.False(t, Passes(StudentPilot, reading))
	assert.False(t, Passes(PrivatePilot, reading))
	// Instrument-rated minimum is 1 sm and MVFR is allowed
	assert.True(t, Passes(InstrumentRated, reading))
}

func TestPasses_windAboveMaximum(t *testing.T) {
	reading := weather.Reading{
		Visibility: "10.0 sm",
		Wind:       "180° at 22 kts",
		Category:   weather.CategoryVFR,
	}
	assert.False(t, Passes(StudentPilot, reading))
	assert.False(t, Passes(PrivatePilot, reading))
	assert.True(t, Passes(InstrumentRated, reading))
}

func TestPasses_categoryCheckNeverSkipped(t *testing.T) {
	// Wind parses to 0 (Calm), visibility is unparsable so its
	// sub-check is skipped, but the category still fails StudentPilot.
	reading := weather.Reading{
		Visibility: "unexpected",
		Wind:       "Calm",
		Category:   weather.CategoryMVFR,
	}
	assert.False(t, Passes(StudentPilot, reading))
	assert.True(t, Passes(PrivatePilot, reading))
}

func TestPasses_failOpenOnUnparsableFields(t *testing.T) {
	reading := weather.Reading{
		Visibility: "N/A",
		Wind:       "gusty",
		Category:   weather.CategoryVFR,
	}
	// Both numeric sub-checks are skipped; category passes
	assert.True(t, Passes(StudentPilot, reading))
}

func TestPasses_calmWindIsZeroKnots(t *testing.T) {
	reading := weather.Reading{
		Visibility: "10.0 sm",
		Wind:       "Calm",
		Category:   weather.CategoryVFR,
	}
	assert.True(t, Passes(StudentPilot, reading))
}

func TestRuleFor_unknownLevelIsMostRestrictive(t *testing.T) {
	rule := RuleFor(TrainingLevel("sport-pilot"))
	assert.Equal(t, RuleFor(StudentPilot), rule)
}

// The rules table must stay monotonically less restrictive as the
// rating increases.
func TestRules_monotonicAllowedCategories(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		lower := RuleFor(levels[i-1])
		higher := RuleFor(levels[i])
		for category, allowed := range lower.AllowedCategories {
			if allowed {
				assert.True(t, higher.AllowedCategories[category],
					"%s must allow %s because %s does", levels[i], category, levels[i-1])
			}
		}
		assert.LessOrEqual(t, higher.MinVisibilityMiles, lower.MinVisibilityMiles)
		assert.GreaterOrEqual(t, higher.MaxWindKnots, lower.MaxWindKnots)
	}
}

func TestParseWindKnots(t *testing.T) {
	tests := []struct {
		summary string
		want    float64
		ok      bool
	}{
		{"Calm", 0, true},
		{"calm", 0, true},
		{"272° at 9 kts", 9, true},
		{"180° at 22 kts", 22, true},
		{"strong and variable", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWindKnots(tt.summary)
		assert.Equal(t, tt.ok, ok, tt.summary)
		assert.Equal(t, tt.want, got, tt.summary)
	}
}

func TestParseVisibility(t *testing.T) {
	got, ok := parseVisibility("5.0 sm")
	assert.True(t, ok)
	assert.Equal(t, 5.0, got)

	_, ok = parseVisibility("N/A")
	assert.False(t, ok)
}
