package roster

import (
	"testing"
	"time"

	"github.com/miriamsimone/upwind/internal/minimums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_studentsAndBookings(t *testing.T) {
	store := NewStore()
	store.AddStudent(&Student{ID: "stu-001", Name: "Maya", TrainingLevel: minimums.StudentPilot})
	store.AddStudent(&Student{ID: "stu-002", Name: "Derek", TrainingLevel: minimums.PrivatePilot})

	later := time.Date(2026, 9, 5, 16, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 9, 2, 16, 0, 0, 0, time.UTC)
	store.AddBooking(&Booking{ID: "bkg-2", StudentID: "stu-001", ScheduledAt: later, Status: StatusScheduled})
	store.AddBooking(&Booking{ID: "bkg-1", StudentID: "stu-001", ScheduledAt: earlier, Status: StatusScheduled})

	students := store.Students()
	require.Len(t, students, 2)
	assert.Equal(t, "Derek", students[0].Name)

	bookings := store.Bookings("stu-001")
	require.Len(t, bookings, 2)
	assert.Equal(t, "bkg-1", bookings[0].ID, "bookings ordered by scheduled time")

	_, err := store.Student("stu-999")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStore_replaceBookingsPublishesScanResult(t *testing.T) {
	store := NewStore()
	original := &Booking{ID: "bkg-1", StudentID: "stu-001", Status: StatusScheduled}
	store.AddBooking(original)

	updated := original.WithStatus(StatusWeatherConflict)
	store.ReplaceBookings("stu-001", []*Booking{updated})

	bookings := store.Bookings("stu-001")
	require.Len(t, bookings, 1)
	assert.Equal(t, StatusWeatherConflict, bookings[0].Status)
	// The original object was never mutated
	assert.Equal(t, StatusScheduled, original.Status)
}

func TestStore_reschedule(t *testing.T) {
	store := NewStore()
	store.AddBooking(&Booking{
		ID:          "bkg-1",
		StudentID:   "stu-001",
		ScheduledAt: time.Date(2026, 9, 3, 15, 0, 0, 0, time.UTC),
		Status:      StatusWeatherConflict,
	})

	newTime := time.Date(2026, 9, 4, 16, 0, 0, 0, time.UTC)
	booking, err := store.Reschedule("bkg-1", newTime)
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, booking.Status)
	assert.Equal(t, newTime, booking.ScheduledAt)

	stored, err := store.Booking("bkg-1")
	require.NoError(t, err)
	assert.Equal(t, StatusRescheduled, stored.Status)

	_, err = store.Reschedule("bkg-999", newTime)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSeed(t *testing.T) {
	store := NewStore()
	Seed(store)

	students := store.Students()
	require.Len(t, students, 3)
	for _, student := range students {
		assert.NotEmpty(t, store.Bookings(student.ID), student.ID)
		for _, booking := range store.Bookings(student.ID) {
			assert.Equal(t, StatusScheduled, booking.Status)
			assert.NotEmpty(t, booking.Departure.Name)
		}
	}
}
