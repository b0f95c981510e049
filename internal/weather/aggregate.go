package weather

import (
	"time"
)

// Afternoon window (UTC hours, inclusive) used to pick each day's
// representative forecast entry; approximates typical lesson times.
const (
	afternoonStartHour = 15
	afternoonEndHour   = 21
)

// maxForecastDays is the farthest day count a daily summary can cover
const maxForecastDays = 7

// DailySummaries reduces dense forecast steps into one representative
// Reading per calendar day (UTC). Entries are grouped by UTC date in
// first-occurrence order. The representative for a date is the first
// entry whose UTC hour falls in the afternoon window; if no entry
// qualifies, the middle entry of that date's group is used. At most
// days readings are emitted, with days clamped to [1,7].
func DailySummaries(entries []RawConditions, days int) []Reading {
	if days < 1 {
		days = 1
	} else if days > maxForecastDays {
		days = maxForecastDays
	}

	var dates []string
	grouped := make(map[string][]RawConditions)
	for _, entry := range entries {
		date := entry.observedTime().Format(time.DateOnly)
		if _, seen := grouped[date]; !seen {
			dates = append(dates, date)
		}
		grouped[date] = append(grouped[date], entry)
	}

	summaries := make([]Reading, 0, days)
	for _, date := range dates {
		if len(summaries) == days {
			break
		}
		summaries = append(summaries, Normalize(representative(grouped[date])))
	}
	return summaries
}

// representative picks the entry that stands for a whole day
func representative(group []RawConditions) RawConditions {
	for _, entry := range group {
		hour := entry.observedTime().Hour()
		if hour >= afternoonStartHour && hour <= afternoonEndHour {
			return entry
		}
	}
	return group[len(group)/2]
}
