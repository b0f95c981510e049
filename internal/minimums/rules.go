// Package minimums evaluates weather readings against the lowest
// conditions each training level is permitted to fly in.
package minimums

import (
	"github.com/miriamsimone/upwind/internal/weather"
)

// TrainingLevel is a student's certification level
type TrainingLevel string

const (
	// StudentPilot is a pre-solo or pre-checkride student
	StudentPilot TrainingLevel = "student-pilot"
	// PrivatePilot holds a private pilot certificate
	PrivatePilot TrainingLevel = "private-pilot"
	// InstrumentRated holds an instrument rating
	InstrumentRated TrainingLevel = "instrument-rated"
)

// Rule is the weather floor for one training level
type Rule struct {
	MinVisibilityMiles float64
	MaxWindKnots       float64
	AllowedCategories  map[weather.Category]bool
}

// rules is the static minimums table, one entry per training level.
// AllowedCategories must stay monotonically less restrictive as the
// rating increases: InstrumentRated ⊇ PrivatePilot ⊇ StudentPilot.
var rules = map[TrainingLevel]Rule{
	StudentPilot: {
		MinVisibilityMiles: 5,
		MaxWindKnots:       15,
		AllowedCategories: map[weather.Category]bool{
			weather.CategoryVFR: true,
		},
	},
	PrivatePilot: {
		MinVisibilityMiles: 3,
		MaxWindKnots:       20,
		AllowedCategories: map[weather.Category]bool{
			weather.CategoryVFR:  true,
			weather.CategoryMVFR: true,
		},
	},
	InstrumentRated: {
		MinVisibilityMiles: 1,
		MaxWindKnots:       25,
		AllowedCategories: map[weather.Category]bool{
			weather.CategoryVFR:  true,
			weather.CategoryMVFR: true,
			weather.CategoryIFR:  true,
		},
	},
}

// RuleFor returns the minimums rule for a training level. Unknown
// levels get the most restrictive rule set.
func RuleFor(level TrainingLevel) Rule {
	if rule, ok := rules[level]; ok {
		return rule
	}
	return rules[StudentPilot]
}

// Levels lists the known training levels from most to least restrictive
func Levels() []TrainingLevel {
	return []TrainingLevel{StudentPilot, PrivatePilot, InstrumentRated}
}
