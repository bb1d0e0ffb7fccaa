package reservation

import (
	"context"
	"errors"
	"fmt"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/reservation/qr"
)

// ErrReservationNotFound is the hard failure for direct lookups; mutating
// operations report a missing reservation as a soft result instead.
var ErrReservationNotFound = errors.New("reservation not found")

// Store is the reservation log consumed by the orchestrator.
type Store interface {
	Create(r models.Reservation) (models.Reservation, error)
	GetByID(id string) (*models.Reservation, bool)
	GetByCustomerID(customerID string) []models.Reservation
	UpdateStatus(id, status string) bool
}

// TicketClient is the remote-call capability for the ticket side. The
// adapter behind it folds transport failures into these shapes, so the
// orchestrator never distinguishes "ticket store said no" from "network
// said no".
type TicketClient interface {
	CheckAvailability(ctx context.Context, ticketID string) bool
	GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	Reserve(ctx context.Context, ticketID, reservationID, customerID string) (bool, string)
	Release(ctx context.Context, ticketID, reservationID string) (bool, string)
}

// Publisher emits reservation lifecycle events. Publish failures never fail
// the customer request.
type Publisher interface {
	PublishReservationCreated(r models.Reservation) error
	PublishReservationFailed(r models.Reservation, reason string) error
	PublishReservationCancelled(r models.Reservation) error
	PublishReservationPaid(r models.Reservation) error
}

// Result is the soft-failure response shape: either full success or a
// failure with a message, never a partial answer.
type Result struct {
	Success     bool
	Message     string
	Reservation *models.Reservation
	QRCode      []byte
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// Service drives the reservation saga across the local reservation store and
// the remote ticket service. It holds no lock and no state of its own; each
// store call is atomic, the multi-step sequences deliberately are not.
type Service struct {
	store  Store
	ticket TicketClient
	events Publisher
	logger *logger.Logger
}

func NewService(store Store, ticket TicketClient, events Publisher, log *logger.Logger) *Service {
	return &Service{store: store, ticket: ticket, events: events, logger: log}
}

// CreateReservation runs the forward path of the saga:
//
//  1. remote availability pre-check (a hint with a TOCTOU window, kept
//     deliberately: correctness lives in the remote Reserve alone)
//  2. ticket detail snapshot for denormalization
//  3. local create with status Reserved, which assigns the reservation id
//     the remote claim needs
//  4. remote Reserve; on failure the local row is compensated to Failed and
//     kept for audit.
func (s *Service) CreateReservation(ctx context.Context, req models.CreateReservationRequest) Result {
	s.logger.LogSaga("CREATE", req.TicketID, fmt.Sprintf("customer %s requests ticket %s", req.CustomerID, req.TicketID))

	if req.CustomerID == "" || req.TicketID == "" {
		return failure("customer id and ticket id are required")
	}

	if !s.ticket.CheckAvailability(ctx, req.TicketID) {
		s.logger.Warn("SAGA", fmt.Sprintf("ticket %s is not available", req.TicketID))
		return failure(fmt.Sprintf("Ticket %s is not available", req.TicketID))
	}

	ticket, err := s.ticket.GetTicketByID(ctx, req.TicketID)
	if err != nil {
		s.logger.Error("SAGA", fmt.Sprintf("ticket %s snapshot failed: %v", req.TicketID, err))
		return failure(fmt.Sprintf("Error creating reservation: %v", err))
	}

	created, err := s.store.Create(models.Reservation{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TicketID:      req.TicketID,
		EventName:     ticket.EventName,
		EventDate:     ticket.EventDate,
		Venue:         ticket.Venue,
		Price:         ticket.Price,
		Status:        models.StatusReserved,
	})
	if err != nil {
		s.logger.Error("SAGA", fmt.Sprintf("local create failed: %v", err))
		return failure(fmt.Sprintf("Error creating reservation: %v", err))
	}

	ok, msg := s.ticket.Reserve(ctx, req.TicketID, created.ID, req.CustomerID)
	if !ok {
		// Compensating action: the row stays, its status records the loss.
		s.logger.Warn("SAGA", fmt.Sprintf("remote reserve failed for %s: %s", created.ID, msg))
		s.store.UpdateStatus(created.ID, models.StatusFailed)
		created.Status = models.StatusFailed

		s.publish(func() error { return s.events.PublishReservationFailed(created, msg) })
		return failure(fmt.Sprintf("Failed to reserve ticket: %s", msg))
	}

	s.logger.LogSaga("CREATE", created.ID, "reservation created successfully")
	s.publish(func() error { return s.events.PublishReservationCreated(created) })

	return Result{
		Success:     true,
		Message:     "Reservation created successfully",
		Reservation: &created,
	}
}

// CancelReservation orders the risky step first: the remote release must
// succeed before any local mutation, so a failed release leaves the
// reservation in its prior state and a retry is safe.
func (s *Service) CancelReservation(ctx context.Context, reservationID string) Result {
	s.logger.LogSaga("CANCEL", reservationID, "cancellation requested")

	r, ok := s.store.GetByID(reservationID)
	if !ok {
		return failure(fmt.Sprintf("Reservation with ID %s not found", reservationID))
	}
	if r.Status == models.StatusCancelled {
		s.logger.Warn("SAGA", fmt.Sprintf("reservation %s is already cancelled", reservationID))
		return failure("Reservation is already cancelled")
	}

	released, msg := s.ticket.Release(ctx, r.TicketID, r.ID)
	if !released {
		s.logger.Warn("SAGA", fmt.Sprintf("remote release failed for %s: %s", reservationID, msg))
		return failure(fmt.Sprintf("Failed to cancel reservation: %s", msg))
	}

	s.store.UpdateStatus(reservationID, models.StatusCancelled)
	r.Status = models.StatusCancelled

	s.logger.LogSaga("CANCEL", reservationID, "reservation cancelled")
	s.publish(func() error { return s.events.PublishReservationCancelled(*r) })

	return Result{Success: true, Message: "Reservation cancelled successfully", Reservation: r}
}

// ConfirmPayment is purely local; payment does not touch ticket ownership.
func (s *Service) ConfirmPayment(ctx context.Context, reservationID, paymentMethod string) Result {
	s.logger.LogSaga("PAYMENT", reservationID, fmt.Sprintf("payment via %s", paymentMethod))

	r, ok := s.store.GetByID(reservationID)
	if !ok {
		return failure(fmt.Sprintf("Reservation with ID %s not found", reservationID))
	}
	if r.Status == models.StatusCancelled {
		return failure("Cannot confirm payment for cancelled reservation")
	}
	if r.Status == models.StatusFailed {
		return failure("Cannot confirm payment for failed reservation")
	}
	if r.Status == models.StatusPaid {
		return failure("Reservation is already paid")
	}

	s.store.UpdateStatus(reservationID, models.StatusPaid)
	r.Status = models.StatusPaid

	code, err := qr.ConfirmationCode(*r, paymentMethod)
	if err != nil {
		// The payment is confirmed either way; the QR is a convenience.
		s.logger.Error("SAGA", fmt.Sprintf("confirmation QR for %s failed: %v", reservationID, err))
	}

	s.logger.LogSaga("PAYMENT", reservationID, "payment confirmed")
	s.publish(func() error { return s.events.PublishReservationPaid(*r) })

	return Result{
		Success:     true,
		Message:     "Payment confirmed successfully",
		Reservation: r,
		QRCode:      code,
	}
}

// GetReservation is a read-only passthrough; an unknown id fails hard.
func (s *Service) GetReservation(reservationID string) (*models.Reservation, error) {
	r, ok := s.store.GetByID(reservationID)
	if !ok {
		return nil, ErrReservationNotFound
	}
	return r, nil
}

func (s *Service) GetCustomerReservations(customerID string) []models.Reservation {
	return s.store.GetByCustomerID(customerID)
}

func (s *Service) publish(fn func() error) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Error("KAFKA", fmt.Sprintf("event publish failed: %v", err))
	}
}
