package models

// Request and response bodies exchanged between the services and the client.

type ReserveTicketRequest struct {
	ReservationID string `json:"reservation_id"`
	CustomerID    string `json:"customer_id"`
}

type ReleaseTicketRequest struct {
	ReservationID string `json:"reservation_id"`
}

type AvailabilityResponse struct {
	TicketID  string `json:"ticket_id"`
	Available bool   `json:"available"`
}

type CreateReservationRequest struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	TicketID      string `json:"ticket_id"`
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// PaymentConfirmation is returned on a successful ConfirmPayment. The QR code
// is a PNG, base64-encoded by the JSON marshaller.
type PaymentConfirmation struct {
	ReservationID string `json:"reservation_id"`
	TicketID      string `json:"ticket_id"`
	PaymentMethod string `json:"payment_method"`
	QRCode        []byte `json:"qr_code,omitempty"`
}
