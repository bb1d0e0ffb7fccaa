package store

import (
	"fmt"
	"sync"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// TicketStore owns the ticket collection. A single mutex covers every
// read-modify-write so that at most one claimant can hold a given ticket;
// Reserve and Release are each one critical section from the availability
// check through the claimant write.
type TicketStore struct {
	mu      sync.Mutex
	tickets []*models.Ticket
	logger  *logger.Logger
}

func NewTicketStore(log *logger.Logger) *TicketStore {
	return &TicketStore{
		tickets: seedTickets(),
		logger:  log,
	}
}

// Tickets are seeded once at startup; the runtime only flips availability and
// the claimant fields.
func seedTickets() []*models.Ticket {
	return []*models.Ticket{
		{ID: "T1001", EventName: "Rock Concert", EventDate: "2025-04-15T19:00:00", Venue: "City Arena", Price: 85.50, Available: true, Section: "A", Row: "1", Seat: "12"},
		{ID: "T1002", EventName: "Rock Concert", EventDate: "2025-04-15T19:00:00", Venue: "City Arena", Price: 75.00, Available: true, Section: "B", Row: "3", Seat: "5"},
		{ID: "T1003", EventName: "Classical Symphony", EventDate: "2025-04-20T18:30:00", Venue: "Concert Hall", Price: 120.00, Available: true, Section: "Premium", Row: "2", Seat: "7"},
		{ID: "T1004", EventName: "Basketball Game", EventDate: "2025-04-22T20:00:00", Venue: "Sports Center", Price: 65.00, Available: true, Section: "Lower", Row: "10", Seat: "15"},
		{ID: "T1005", EventName: "Theater Play", EventDate: "2025-04-25T19:30:00", Venue: "City Theater", Price: 95.00, Available: true, Section: "Orchestra", Row: "5", Seat: "8"},
	}
}

// GetAll returns a snapshot copy of every ticket.
func (s *TicketStore) GetAll() []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	return out
}

// GetByID returns a copy of the ticket, or false if the id is unknown.
func (s *TicketStore) GetByID(id string) (*models.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		return nil, false
	}
	copy := *t
	return &copy, true
}

// IsAvailable is false both for claimed and for unknown tickets. It is a
// hint only; the authoritative decision happens inside Reserve.
func (s *TicketStore) IsAvailable(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		s.logger.Warn("STORE", fmt.Sprintf("availability check for unknown ticket %s", id))
		return false
	}
	return t.Available
}

// Reserve claims the ticket for the given reservation. It succeeds only if
// the ticket exists and is available right now; losers of a race get false
// and no state changes.
func (s *TicketStore) Reserve(ticketID, reservationID, customerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(ticketID)
	if t == nil {
		s.logger.Warn("STORE", fmt.Sprintf("reserve failed: ticket %s not found", ticketID))
		return false
	}
	if !t.Available {
		s.logger.Warn("STORE", fmt.Sprintf("reserve failed: ticket %s already claimed by %s", ticketID, t.ReservationID))
		return false
	}

	t.Available = false
	t.ReservationID = reservationID
	t.CustomerID = customerID

	s.logger.LogStore("RESERVE", ticketID, fmt.Sprintf("claimed by reservation %s", reservationID))
	return true
}

// Release frees the ticket only when the caller proves ownership: the ticket
// must be claimed and its recorded claimant must match reservationID exactly.
func (s *TicketStore) Release(ticketID, reservationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(ticketID)
	if t == nil {
		s.logger.Warn("STORE", fmt.Sprintf("release failed: ticket %s not found", ticketID))
		return false
	}
	if t.Available {
		s.logger.Warn("STORE", fmt.Sprintf("release failed: ticket %s is not claimed", ticketID))
		return false
	}
	if t.ReservationID != reservationID {
		s.logger.Warn("STORE", fmt.Sprintf("release failed: ticket %s claimed by %s, not %s", ticketID, t.ReservationID, reservationID))
		return false
	}

	t.Available = true
	t.ReservationID = ""
	t.CustomerID = ""

	s.logger.LogStore("RELEASE", ticketID, fmt.Sprintf("released by reservation %s", reservationID))
	return true
}

func (s *TicketStore) find(id string) *models.Ticket {
	for _, t := range s.tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
