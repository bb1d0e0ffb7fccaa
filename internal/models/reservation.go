package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reservation statuses. Cancelled and Failed are terminal.
const (
	StatusReserved  = "Reserved"
	StatusPaid      = "Paid"
	StatusCancelled = "Cancelled"
	StatusFailed    = "Failed"
)

type Reservation struct {
	bun.BaseModel `bun:"table:reservations" json:"-"`

	ID            string    `bun:"id,pk" json:"reservation_id"`
	CustomerID    string    `bun:"customer_id" json:"customer_id"`
	CustomerName  string    `bun:"customer_name" json:"customer_name"`
	CustomerEmail string    `bun:"customer_email" json:"customer_email"`
	TicketID      string    `bun:"ticket_id" json:"ticket_id"`
	EventName     string    `bun:"event_name" json:"event_name"`
	EventDate     string    `bun:"event_date" json:"event_date"`
	Venue         string    `bun:"venue" json:"venue"`
	Price         float64   `bun:"price" json:"price"`
	Status        string    `bun:"status" json:"status"`
	CreatedAt     time.Time `bun:"created_at" json:"created_at"`
}

// Terminal reports whether the reservation can take no further transition.
func (r Reservation) Terminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusFailed
}
