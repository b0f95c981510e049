package roster

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrStudentNotFound is returned when no student has the given ID
	ErrStudentNotFound = errors.New("student not found")
	// ErrBookingNotFound is returned when no booking has the given ID
	ErrBookingNotFound = errors.New("booking not found")
)

// Store is a concurrency-safe in-memory roster. Scan results are
// published back through ReplaceBookings, the single writer path for a
// student's booking list; readers always see a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	students map[string]*Student
	bookings map[string][]*Booking // keyed by student ID
}

// NewStore creates an empty roster store
func NewStore() *Store {
	return &Store{
		students: make(map[string]*Student),
		bookings: make(map[string][]*Booking),
	}
}

// AddStudent registers a student
func (s *Store) AddStudent(student *Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = student
}

// AddBooking registers a booking under its student
func (s *Store) AddBooking(booking *Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.StudentID] = append(s.bookings[booking.StudentID], booking)
}

// Student returns the student with the given ID
func (s *Store) Student(id string) (*Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

// Students returns all students ordered by name
func (s *Store) Students() []*Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]*Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].Name < students[j].Name
	})
	return students
}

// Bookings returns a snapshot of a student's bookings ordered by
// scheduled time
func (s *Store) Bookings(studentID string) []*Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := make([]*Booking, len(s.bookings[studentID]))
	copy(bookings, s.bookings[studentID])
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ScheduledAt.Before(bookings[j].ScheduledAt)
	})
	return bookings
}

// ReplaceBookings publishes an updated booking list for a student,
// typically the result of a conflict scan.
func (s *Store) ReplaceBookings(studentID string, bookings []*Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[studentID] = bookings
}

// Booking returns the booking with the given ID
func (s *Store) Booking(id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range s.bookings {
		for _, booking := range list {
			if booking.ID == id {
				return booking, nil
			}
		}
	}
	return nil, ErrBookingNotFound
}

// Reschedule moves a booking to an accepted new time and marks it
// Rescheduled, excluding it from further automatic scanning.
func (s *Store) Reschedule(id string, newTime time.Time) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for studentID, list := range s.bookings {
		for i, booking := range list {
			if booking.ID != id {
				continue
			}
			updated := *booking
			updated.ScheduledAt = newTime
			updated.Status = StatusRescheduled
			s.bookings[studentID][i] = &updated
			return &updated, nil
		}
	}
	return nil, ErrBookingNotFound
}
