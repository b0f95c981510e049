package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/miriamsimone/upwind/internal/advisory"
	"github.com/miriamsimone/upwind/internal/conflicts"
	"github.com/miriamsimone/upwind/internal/provider"
	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/miriamsimone/upwind/pkg/logger"
)

// Handler serves the API endpoints
type Handler struct {
	store    *roster.Store
	weather  *weather.Service
	scanner  *conflicts.Scanner
	advisory *advisory.Service
	logger   *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(store *roster.Store, weatherService *weather.Service, scanner *conflicts.Scanner, advisoryService *advisory.Service, log *logger.Logger) *Handler {
	return &Handler{
		store:    store,
		weather:  weatherService,
		scanner:  scanner,
		advisory: advisoryService,
		logger:   log.Named("api-handler"),
	}
}

// GetHealth returns service health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStudents returns all students
func (h *Handler) GetStudents(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Students())
}

// GetStudent returns one student by ID
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.store.Student(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, student)
}

// GetStudentBookings returns a student's bookings
func (h *Handler) GetStudentBookings(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	if _, err := h.store.Student(studentID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.store.Bookings(studentID))
}

// ScanStudent runs a conflict scan for a student and publishes the
// updated bookings. The request context carries cancellation: a closed
// connection discards the scan without touching stored state.
func (h *Handler) ScanStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")
	student, err := h.store.Student(studentID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	updated, err := h.scanner.Scan(r.Context(), student, h.store.Bookings(studentID))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.store.ReplaceBookings(studentID, updated)
	h.respondJSON(w, http.StatusOK, updated)
}

// GetCurrentWeather returns the normalized current reading at a coordinate
func (h *Handler) GetCurrentWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := coordinates(r)
	if err != nil {
		h.respondStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	reading, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, reading)
}

// GetDailyForecast returns daily forecast summaries at a coordinate
func (h *Handler) GetDailyForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := coordinates(r)
	if err != nil {
		h.respondStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			h.respondStatus(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
	}

	readings, err := h.weather.DailyForecast(r.Context(), lat, lon, days)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, readings)
}

// advisoryRequest is the POST body for requesting suggestions
type advisoryRequest struct {
	BookingID string `json:"booking_id"`
	Notes     string `json:"notes,omitempty"`
}

// RequestAdvisory asks the generative provider for reschedule
// suggestions for a conflicted booking
func (h *Handler) RequestAdvisory(w http.ResponseWriter, r *http.Request) {
	student, err := h.store.Student(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req advisoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.store.Booking(req.BookingID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	// The representative reading is the first forecast day at the
	// booking's departure location.
	readings, err := h.weather.DailyForecast(r.Context(), booking.Departure.Lat, booking.Departure.Lon, 7)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if len(readings) == 0 {
		h.respondStatus(w, http.StatusBadGateway, "no forecast available for departure location")
		return
	}

	suggestions, err := h.advisory.RequestAdvisory(r.Context(), student, readings[0], advisory.ConflictDescriptor{
		OriginalTime: booking.ScheduledAt,
		Reason:       "Forecast weather at the departure field violates the student's certified minimums",
		Notes:        req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, suggestions)
}

// rescheduleRequest is the POST body for accepting a suggestion
type rescheduleRequest struct {
	ProposedAt string `json:"proposed_at"`
}

// RescheduleBooking accepts a reschedule suggestion, rewriting the
// booking's time and marking it Rescheduled
func (h *Handler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposedAt, err := time.Parse(time.RFC3339, req.ProposedAt)
	if err != nil {
		h.respondStatus(w, http.StatusBadRequest, "proposed_at must be RFC 3339")
		return
	}

	booking, err := h.store.Reschedule(chi.URLParam(r, "id"), proposedAt.UTC())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, booking)
}

func coordinates(r *http.Request) (float64, float64, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return 0, 0, errors.New("invalid lat parameter")
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return 0, 0, errors.New("invalid lon parameter")
	}
	return lat, lon, nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondStatus(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors onto HTTP statuses
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var configErr *provider.ConfigError
	var providerErr *provider.Error
	var parseErr *advisory.ParseError

	switch {
	case errors.Is(err, roster.ErrStudentNotFound), errors.Is(err, roster.ErrBookingNotFound):
		h.respondStatus(w, http.StatusNotFound, err.Error())
	case errors.As(err, &configErr):
		h.respondStatus(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &parseErr):
		h.respondStatus(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &providerErr):
		h.respondStatus(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Unhandled error", logger.Error(err))
		h.respondStatus(w, http.StatusInternalServerError, err.Error())
	}
}
