package tickets

import (
	"fmt"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// Store is the ticket collection consumed by the service. Expected failures
// (unknown id, already claimed, wrong claimant) come back as booleans, never
// as errors.
type Store interface {
	GetAll() []models.Ticket
	GetByID(id string) (*models.Ticket, bool)
	IsAvailable(id string) bool
	Reserve(ticketID, reservationID, customerID string) bool
	Release(ticketID, reservationID string) bool
}

type TicketService struct {
	Store  Store
	Logger *logger.Logger
}

func NewTicketService(store Store, log *logger.Logger) *TicketService {
	return &TicketService{Store: store, Logger: log}
}

func (s *TicketService) GetAllTickets() []models.TicketInfo {
	tickets := s.Store.GetAll()
	infos := make([]models.TicketInfo, 0, len(tickets))
	for _, t := range tickets {
		infos = append(infos, t.Info())
	}
	return infos
}

func (s *TicketService) GetTicket(ticketID string) (*models.Ticket, bool) {
	return s.Store.GetByID(ticketID)
}

func (s *TicketService) CheckAvailability(ticketID string) bool {
	return s.Store.IsAvailable(ticketID)
}

// Reserve attempts the atomic claim and returns the outcome with a
// human-readable message for the caller.
func (s *TicketService) Reserve(ticketID, reservationID, customerID string) (bool, string) {
	if ticketID == "" || reservationID == "" || customerID == "" {
		return false, "ticket id, reservation id and customer id are required"
	}
	if s.Store.Reserve(ticketID, reservationID, customerID) {
		return true, fmt.Sprintf("Ticket %s successfully reserved", ticketID)
	}
	return false, fmt.Sprintf("Failed to reserve ticket %s", ticketID)
}

func (s *TicketService) Release(ticketID, reservationID string) (bool, string) {
	if ticketID == "" || reservationID == "" {
		return false, "ticket id and reservation id are required"
	}
	if s.Store.Release(ticketID, reservationID) {
		return true, fmt.Sprintf("Ticket %s successfully released", ticketID)
	}
	return false, fmt.Sprintf("Failed to release ticket %s", ticketID)
}
