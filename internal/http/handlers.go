package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/lifecycle"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/slots"
)

// statusForError maps the domain sentinels onto HTTP status codes. Anything
// unrecognised is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrAlreadyMember),
		errors.Is(err, booking.ErrRosterFull):
		return http.StatusConflict
	case errors.Is(err, roster.ErrPrivateBooking):
		return http.StatusForbidden
	case errors.Is(err, slots.ErrTooFarAhead),
		errors.Is(err, lifecycle.ErrInvalidSlot),
		errors.Is(err, lifecycle.ErrSlotPassed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) AvailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := slots.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "Invalid or missing 'date' parameter, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		userID := r.URL.Query().Get("user")

		available, err := s.Availability.GetAvailability(day, userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, available)
	}
}

func (s *Server) CreateBookingHandler() http.HandlerFunc {
	type request struct {
		UserID    string          `json:"user_id"`
		Date      slots.Date      `json:"date"`
		StartTime slots.TimeOfDay `json:"start_time"`
		IsPrivate bool            `json:"is_private"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.UserID == "" {
			http.Error(w, "Missing 'user_id'", http.StatusBadRequest)
			return
		}

		b, err := s.Lifecycle.Create(req.UserID, req.Date, req.StartTime, req.IsPrivate, isDryRunFromContext(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, b)
	}
}

type rosterRequest struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	LeaveOnly bool   `json:"leave_only"`
}

func decodeRosterRequest(w http.ResponseWriter, r *http.Request) (rosterRequest, bool) {
	var req rosterRequest
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return req, false
	}
	if req.BookingID == "" || req.UserID == "" {
		http.Error(w, "Missing 'booking_id' or 'user_id'", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) JoinBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRosterRequest(w, r)
		if !ok {
			return
		}
		entry, err := s.Lifecycle.Join(req.BookingID, req.UserID, isDryRunFromContext(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, entry)
	}
}

func (s *Server) LeaveBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRosterRequest(w, r)
		if !ok {
			return
		}
		if err := s.Lifecycle.Leave(req.BookingID, req.UserID, isDryRunFromContext(r)); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) CancelBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRosterRequest(w, r)
		if !ok {
			return
		}
		if err := s.Lifecycle.Cancel(req.BookingID, req.UserID, req.LeaveOnly, isDryRunFromContext(r)); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) ListRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := r.URL.Query().Get("booking_id")
		if bookingID == "" {
			http.Error(w, "Missing 'booking_id' parameter", http.StatusBadRequest)
			return
		}
		if _, err := s.Store.GetBooking(bookingID); err != nil {
			writeDomainError(w, err)
			return
		}
		entries, err := s.Roster.ListPlayers(bookingID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, entries)
	}
}

func (s *Server) MyBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		if userID == "" {
			http.Error(w, "Missing 'user' parameter", http.StatusBadRequest)
			return
		}
		mine, err := s.Lifecycle.ListMyBookings(userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if mine == nil {
			mine = []lifecycle.MyBooking{}
		}
		writeJSON(w, mine)
	}
}

func (s *Server) NextBookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		if userID == "" {
			http.Error(w, "Missing 'user' parameter", http.StatusBadRequest)
			return
		}
		next, err := s.Lifecycle.NextBooking(userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if next == nil {
			http.Error(w, "No upcoming booking", http.StatusNotFound)
			return
		}
		writeJSON(w, next)
	}
}

func (s *Server) OpenMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 0 {
				http.Error(w, "Invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		matches, err := s.Lifecycle.ListOpenMatches(limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if matches == nil {
			matches = []lifecycle.OpenMatch{}
		}
		writeJSON(w, matches)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := s.Players.GetAll()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, profiles)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	type response struct {
		Counters       map[string]int `json:"counters"`
		BookingsPerDay map[string]int `json:"bookings_per_day"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Stats.GetAll()
		if err != nil {
			http.Error(w, "Failed to get usage counters", http.StatusInternalServerError)
			log.Error("Failed to get usage counters", "error", err)
			return
		}
		perDay, err := s.Stats.BookingsPerDay()
		if err != nil {
			http.Error(w, "Failed to get per-day counts", http.StatusInternalServerError)
			log.Error("Failed to get per-day counts", "error", err)
			return
		}
		writeJSON(w, response{Counters: counters, BookingsPerDay: perDay})
	}
}
