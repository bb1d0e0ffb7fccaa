package models

// Ticket is a unique, singly-ownable unit. Availability and the two claimant
// fields move together: the ticket is unavailable exactly when ReservationID
// and CustomerID carry the reservation that claimed it.
type Ticket struct {
	ID            string  `json:"ticket_id"`
	EventName     string  `json:"event_name"`
	EventDate     string  `json:"event_date"`
	Venue         string  `json:"venue"`
	Price         float64 `json:"price"`
	Available     bool    `json:"available"`
	Section       string  `json:"section"`
	Row           string  `json:"row"`
	Seat          string  `json:"seat"`
	ReservationID string  `json:"reservation_id,omitempty"`
	CustomerID    string  `json:"customer_id,omitempty"`
}

// TicketInfo is the short listing shape returned by the all-tickets endpoint.
type TicketInfo struct {
	ID        string  `json:"ticket_id"`
	EventName string  `json:"event_name"`
	EventDate string  `json:"event_date"`
	Venue     string  `json:"venue"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

func (t Ticket) Info() TicketInfo {
	return TicketInfo{
		ID:        t.ID,
		EventName: t.EventName,
		EventDate: t.EventDate,
		Venue:     t.Venue,
		Price:     t.Price,
		Available: t.Available,
	}
}
