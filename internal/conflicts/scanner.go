// Package conflicts scans a student's upcoming lesson bookings against
// forecast weather and their certified minimums.
package conflicts

import (
	"context"
	"time"

	"github.com/miriamsimone/upwind/internal/minimums"
	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/miriamsimone/upwind/pkg/logger"
)

// ForecastSource supplies daily forecast readings per location
type ForecastSource interface {
	DailyForecast(ctx context.Context, lat, lon float64, days int) ([]weather.Reading, error)
}

// Scanner evaluates bookings in a forward window against forecast
// weather. It takes and returns a booking collection; the caller owns
// publishing the result, so concurrent scans for different students
// share no state.
type Scanner struct {
	forecasts  ForecastSource
	windowDays int
	logger     *logger.Logger
	now        func() time.Time
}

// NewScanner creates a conflict scanner. windowDays is clamped to the
// forecast horizon.
func NewScanner(forecasts ForecastSource, windowDays int, log *logger.Logger) *Scanner {
	if windowDays < 1 || windowDays > 7 {
		windowDays = 7
	}
	return &Scanner{
		forecasts:  forecasts,
		windowDays: windowDays,
		logger:     log.Named("conflict-scanner"),
		now:        time.Now,
	}
}

// fetchResult carries one location's forecast back from its goroutine
type fetchResult struct {
	key    string
	byDate map[string]weather.Reading
	err    error
}

// Scan evaluates the student's bookings and returns the updated
// collection. Bookings whose status is unchanged keep their original
// pointer so callers can rely on identity-based change detection.
// Rescheduled bookings are never touched; bookings outside the forward
// window are forced to Scheduled. A failed forecast fetch for one
// location leaves that location's bookings unchanged without aborting
// the rest. If ctx is cancelled before results are assembled, nothing
// is returned and no booking is replaced.
func (s *Scanner) Scan(ctx context.Context, student *roster.Student, bookings []*roster.Booking) ([]*roster.Booking, error) {
	today := dateOf(s.now().UTC())

	// One forecast per distinct departure location among in-window
	// bookings; fetches are independent and run concurrently.
	locations := make(map[string]roster.Location)
	for _, booking := range bookings {
		if booking.Status == roster.StatusRescheduled {
			continue
		}
		if !s.inWindow(today, booking.ScheduledAt) {
			continue
		}
		locations[weather.LocationKey(booking.Departure.Lat, booking.Departure.Lon)] = booking.Departure
	}

	results := make(chan fetchResult, len(locations))
	for key, loc := range locations {
		go func(key string, loc roster.Location) {
			readings, err := s.forecasts.DailyForecast(ctx, loc.Lat, loc.Lon, s.windowDays)
			if err != nil {
				results <- fetchResult{key: key, err: err}
				return
			}
			byDate := make(map[string]weather.Reading, len(readings))
			for _, reading := range readings {
				byDate[dateOf(reading.ObservedAt)] = reading
			}
			results <- fetchResult{key: key, byDate: byDate}
		}(key, loc)
	}

	forecasts := make(map[string]map[string]weather.Reading, len(locations))
	failed := make(map[string]bool)
	for range locations {
		result := <-results
		if result.err != nil {
			s.logger.Error("Forecast fetch failed, leaving location's bookings unchanged",
				logger.String("location", result.key),
				logger.String("student_id", student.ID),
				logger.Error(result.err),
			)
			failed[result.key] = true
			continue
		}
		forecasts[result.key] = result.byDate
	}

	// A superseded scan must not produce a state the caller could
	// publish; bail before assembling any update.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated := make([]*roster.Booking, len(bookings))
	for i, booking := range bookings {
		updated[i] = s.evaluate(today, student.TrainingLevel, booking, forecasts, failed)
	}
	return updated, nil
}

// evaluate resolves one booking's status, reusing the original pointer
// when nothing changes
func (s *Scanner) evaluate(today string, level minimums.TrainingLevel, booking *roster.Booking, forecasts map[string]map[string]weather.Reading, failed map[string]bool) *roster.Booking {
	if booking.Status == roster.StatusRescheduled {
		return booking
	}

	if !s.inWindow(today, booking.ScheduledAt) {
		// Conflicts are only evaluated near-term; forecasts beyond the
		// window are unavailable.
		return withStatus(booking, roster.StatusScheduled)
	}

	key := weather.LocationKey(booking.Departure.Lat, booking.Departure.Lon)
	if failed[key] {
		return booking
	}

	reading, ok := forecasts[key][dateOf(booking.ScheduledAt.UTC())]
	if ok && !minimums.Passes(level, reading) {
		return withStatus(booking, roster.StatusWeatherConflict)
	}
	return withStatus(booking, roster.StatusScheduled)
}

func withStatus(booking *roster.Booking, status roster.BookingStatus) *roster.Booking {
	if booking.Status == status {
		return booking
	}
	return booking.WithStatus(status)
}

// inWindow reports whether a booking's UTC calendar date falls within
// the forward window: inclusive of today, exclusive of the final day.
func (s *Scanner) inWindow(today string, scheduledAt time.Time) bool {
	todayTime, _ := time.Parse(time.DateOnly, today)
	days := int(midnight(scheduledAt.UTC()).Sub(todayTime).Hours() / 24)
	return days >= 0 && days < s.windowDays
}

func dateOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
