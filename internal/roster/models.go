// Package roster holds the training operation's students and lesson
// bookings. State lives in process memory for the session; nothing is
// persisted.
package roster

import (
	"time"

	"github.com/miriamsimone/upwind/internal/minimums"
)

// BookingStatus is the lifecycle state of a lesson booking
type BookingStatus string

const (
	// StatusScheduled means the lesson is on the calendar with no known conflict
	StatusScheduled BookingStatus = "scheduled"
	// StatusWeatherConflict means forecast weather fails the student's minimums
	StatusWeatherConflict BookingStatus = "weather-conflict"
	// StatusRescheduled means a human accepted a new time; the booking
	// is excluded from further automatic scanning
	StatusRescheduled BookingStatus = "rescheduled"
)

// Location is a departure point for a lesson
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// Student is a member of the training roster. Read-only input to the
// scanning and advisory logic.
type Student struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	TrainingLevel minimums.TrainingLevel `json:"training_level"`
	HoursLogged   float64                `json:"hours_logged"`
	Aircraft      string                 `json:"aircraft"`
	Goals         string                 `json:"goals,omitempty"`
}

// Booking is one scheduled flight lesson. Status is the only field the
// conflict scanner rewrites; ScheduledAt changes only when a human
// accepts a reschedule suggestion.
type Booking struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Departure   Location      `json:"departure"`
	Status      BookingStatus `json:"status"`
}

// WithStatus returns a copy of the booking carrying the new status.
// Callers that detect no change should keep the original pointer so
// identity-based change detection stays reliable.
func (b *Booking) WithStatus(status BookingStatus) *Booking {
	updated := *b
	updated.Status = status
	return &updated
}
