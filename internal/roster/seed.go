package roster

import (
	"fmt"
	"time"

	"github.com/miriamsimone/upwind/internal/minimums"
)

// Flying Cloud, Lake Elmo and Anoka County are the demo operation's
// departure fields.
var (
	flyingCloud = Location{Lat: 44.827, Lon: -93.457, Name: "Flying Cloud (KFCM)"}
	lakeElmo    = Location{Lat: 44.997, Lon: -92.856, Name: "Lake Elmo (21D)"}
	anokaCounty = Location{Lat: 45.145, Lon: -93.211, Name: "Anoka County (KANE)"}
)

// Seed populates the store with the demo roster used when no external
// roster integration is configured.
func Seed(store *Store) {
	students := []*Student{
		{
			ID:            "stu-001",
			Name:          "Maya Lindqvist",
			TrainingLevel: minimums.StudentPilot,
			HoursLogged:   23.5,
			Aircraft:      "Cessna 172S",
			Goals:         "first solo cross-country",
		},
		{
			ID:            "stu-002",
			Name:          "Derek Okafor",
			TrainingLevel: minimums.PrivatePilot,
			HoursLogged:   87.2,
			Aircraft:      "Piper PA-28",
			Goals:         "instrument rating",
		},
		{
			ID:            "stu-003",
			Name:          "Priya Raman",
			TrainingLevel: minimums.InstrumentRated,
			HoursLogged:   214.0,
			Aircraft:      "Cirrus SR20",
			Goals:         "commercial certificate",
		},
	}
	for _, student := range students {
		store.AddStudent(student)
	}

	now := time.Now().UTC()
	lessonTime := func(daysOut int, hour int) time.Time {
		day := now.AddDate(0, 0, daysOut)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	}

	bookings := []*Booking{
		{StudentID: "stu-001", ScheduledAt: lessonTime(1, 16), Departure: flyingCloud},
		{StudentID: "stu-001", ScheduledAt: lessonTime(4, 17), Departure: flyingCloud},
		{StudentID: "stu-002", ScheduledAt: lessonTime(2, 15), Departure: flyingCloud},
		{StudentID: "stu-002", ScheduledAt: lessonTime(5, 18), Departure: lakeElmo},
		{StudentID: "stu-002", ScheduledAt: lessonTime(12, 16), Departure: lakeElmo},
		{StudentID: "stu-003", ScheduledAt: lessonTime(3, 19), Departure: anokaCounty},
	}
	for i, booking := range bookings {
		booking.ID = fmt.Sprintf("bkg-%03d", i+1)
		booking.Status = StatusScheduled
		store.AddBooking(booking)
	}
}
