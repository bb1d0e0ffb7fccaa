package qr

import (
	"encoding/json"

	"github.com/skip2/go-qrcode"

	"ticket-reservation/internal/models"
)

type confirmationPayload struct {
	ReservationID string  `json:"reservation_id"`
	TicketID      string  `json:"ticket_id"`
	CustomerID    string  `json:"customer_id"`
	EventName     string  `json:"event_name"`
	PaymentMethod string  `json:"payment_method"`
	Price         float64 `json:"price"`
}

// ConfirmationCode renders a payment confirmation as a PNG QR code the
// customer can present at the venue.
func ConfirmationCode(r models.Reservation, paymentMethod string) ([]byte, error) {
	data, err := json.Marshal(confirmationPayload{
		ReservationID: r.ID,
		TicketID:      r.TicketID,
		CustomerID:    r.CustomerID,
		EventName:     r.EventName,
		PaymentMethod: paymentMethod,
		Price:         r.Price,
	})
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, 256)
}
