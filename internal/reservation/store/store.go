package store

import (
	"fmt"
	"sync"
	"time"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// ReservationStore is the authoritative in-memory log of reservation
// attempts, failed ones included. One mutex serializes every mutation, which
// also keeps the ID counter duplicate-free.
type ReservationStore struct {
	mu           sync.Mutex
	reservations []*models.Reservation
	lastID       int
	logger       *logger.Logger
}

func NewReservationStore(log *logger.Logger) *ReservationStore {
	return &ReservationStore{
		lastID: 1000,
		logger: log,
	}
}

// Create assigns the next identifier (R1001, R1002, ...), stamps the
// creation time and appends the row. The stored copy is returned.
func (s *ReservationStore) Create(r models.Reservation) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	r.ID = fmt.Sprintf("R%d", s.lastID)
	r.CreatedAt = time.Now().UTC()

	stored := r
	s.reservations = append(s.reservations, &stored)

	s.logger.LogStore("CREATE", r.ID, fmt.Sprintf("reservation for customer %s, ticket %s", r.CustomerID, r.TicketID))
	return r, nil
}

func (s *ReservationStore) GetByID(id string) (*models.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return nil, false
	}
	copy := *r
	return &copy, true
}

func (s *ReservationStore) GetByCustomerID(customerID string) []models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Reservation
	for _, r := range s.reservations {
		if r.CustomerID == customerID {
			out = append(out, *r)
		}
	}
	return out
}

// UpdateStatus mutates only the status field. Transition validity is the
// orchestrator's business, not the store's.
func (s *ReservationStore) UpdateStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		s.logger.Warn("STORE", fmt.Sprintf("status update failed: reservation %s not found", id))
		return false
	}
	r.Status = status

	s.logger.LogStore("STATUS", id, fmt.Sprintf("status set to %s", status))
	return true
}

func (s *ReservationStore) find(id string) *models.Reservation {
	for _, r := range s.reservations {
		if r.ID == id {
			return r
		}
	}
	return nil
}
