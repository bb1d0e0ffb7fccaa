package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ticket-reservation/internal/models"
)

// Console client for exercising the ticket and reservation services.

type clientEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type app struct {
	ticketURL      string
	reservationURL string
	client         *http.Client
	reader         *bufio.Reader

	customerID    string
	customerName  string
	customerEmail string
}

func main() {
	_ = godotenv.Load()

	a := &app{
		ticketURL:      envOr("TICKET_SERVICE_URL", "http://localhost:8081"),
		reservationURL: envOr("RESERVATION_SERVICE_URL", "http://localhost:8082"),
		client:         &http.Client{Timeout: 10 * time.Second},
		reader:         bufio.NewReader(os.Stdin),
		customerID:     envOr("DEMO_CUSTOMER_ID", "C1001"),
		customerName:   envOr("DEMO_CUSTOMER_NAME", "Jane Doe"),
		customerEmail:  envOr("DEMO_CUSTOMER_EMAIL", "jane.doe@example.com"),
	}

	fmt.Println("Ticket Reservation Client")
	fmt.Println("=========================")
	fmt.Printf("Customer: %s (%s)\n", a.customerName, a.customerID)

	for {
		fmt.Println("\nPlease select an option:")
		fmt.Println("1. View all tickets")
		fmt.Println("2. View ticket details")
		fmt.Println("3. Make a reservation")
		fmt.Println("4. View my reservations")
		fmt.Println("5. Cancel a reservation")
		fmt.Println("6. Confirm payment for a reservation")
		fmt.Println("0. Exit")
		fmt.Print("\nYour choice: ")

		switch a.readLine() {
		case "1":
			a.viewAllTickets()
		case "2":
			a.viewTicketDetails()
		case "3":
			a.makeReservation()
		case "4":
			a.viewMyReservations()
		case "5":
			a.cancelReservation()
		case "6":
			a.confirmPayment()
		case "0":
			fmt.Println("Thank you for using the Ticket Reservation System!")
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func (a *app) viewAllTickets() {
	env, _, err := a.get(a.ticketURL + "/api/v1/tickets")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var infos []models.TicketInfo
	if err := json.Unmarshal(env.Data, &infos); err != nil {
		fmt.Printf("Error decoding tickets: %v\n", err)
		return
	}

	fmt.Println("\nTickets:")
	fmt.Println("========")
	for _, t := range infos {
		available := "No"
		if t.Available {
			available = "Yes"
		}
		fmt.Printf("ID: %s | %s | %s | %s | $%.2f | Available: %s\n",
			t.ID, t.EventName, t.EventDate, t.Venue, t.Price, available)
	}
}

func (a *app) viewTicketDetails() {
	fmt.Print("Ticket ID: ")
	ticketID := a.readLine()

	env, status, err := a.get(a.ticketURL + "/api/v1/tickets/" + ticketID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if status == http.StatusNotFound {
		fmt.Printf("Ticket %s not found.\n", ticketID)
		return
	}

	var t models.Ticket
	if err := json.Unmarshal(env.Data, &t); err != nil {
		fmt.Printf("Error decoding ticket: %v\n", err)
		return
	}

	fmt.Printf("\n%s — %s\n", t.ID, t.EventName)
	fmt.Printf("Date:    %s\n", t.EventDate)
	fmt.Printf("Venue:   %s\n", t.Venue)
	fmt.Printf("Seat:    section %s, row %s, seat %s\n", t.Section, t.Row, t.Seat)
	fmt.Printf("Price:   $%.2f\n", t.Price)
	fmt.Printf("Available: %t\n", t.Available)
}

func (a *app) makeReservation() {
	fmt.Print("Ticket ID to reserve: ")
	ticketID := a.readLine()

	req := models.CreateReservationRequest{
		CustomerID:    a.customerID,
		CustomerName:  a.customerName,
		CustomerEmail: a.customerEmail,
		TicketID:      ticketID,
	}

	env, _, err := a.post(a.reservationURL+"/api/v1/reservations", req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !env.Success {
		fmt.Printf("Reservation failed: %s\n", env.Message)
		return
	}

	var r models.Reservation
	if err := json.Unmarshal(env.Data, &r); err != nil {
		fmt.Printf("Error decoding reservation: %v\n", err)
		return
	}
	fmt.Printf("Reservation %s created for %s (%s) — status %s\n", r.ID, r.EventName, r.TicketID, r.Status)
}

func (a *app) viewMyReservations() {
	env, _, err := a.get(a.reservationURL + "/api/v1/customers/" + a.customerID + "/reservations")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	var reservations []models.Reservation
	if err := json.Unmarshal(env.Data, &reservations); err != nil {
		fmt.Printf("Error decoding reservations: %v\n", err)
		return
	}
	if len(reservations) == 0 {
		fmt.Println("No reservations yet.")
		return
	}

	fmt.Println("\nMy Reservations:")
	fmt.Println("================")
	for _, r := range reservations {
		fmt.Printf("%s | %s | ticket %s | $%.2f | %s | %s\n",
			r.ID, r.EventName, r.TicketID, r.Price, r.Status, r.CreatedAt.Format(time.RFC3339))
	}
}

func (a *app) cancelReservation() {
	fmt.Print("Reservation ID to cancel: ")
	reservationID := a.readLine()

	req, err := http.NewRequest(http.MethodDelete, a.reservationURL+"/api/v1/reservations/"+reservationID, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	env, _, err := a.do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(env.Message)
}

func (a *app) confirmPayment() {
	fmt.Print("Reservation ID to pay: ")
	reservationID := a.readLine()
	fmt.Print("Payment method (e.g. Credit Card): ")
	method := a.readLine()

	env, _, err := a.post(a.reservationURL+"/api/v1/reservations/"+reservationID+"/payment",
		models.ConfirmPaymentRequest{PaymentMethod: method})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !env.Success {
		fmt.Printf("Payment failed: %s\n", env.Message)
		return
	}

	var confirmation models.PaymentConfirmation
	if err := json.Unmarshal(env.Data, &confirmation); err == nil && len(confirmation.QRCode) > 0 {
		fmt.Printf("%s (confirmation QR: %d bytes PNG)\n", env.Message, len(confirmation.QRCode))
		return
	}
	fmt.Println(env.Message)
}

func (a *app) get(url string) (*clientEnvelope, int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	return a.do(req)
}

func (a *app) post(url string, body interface{}) (*clientEnvelope, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *app) do(req *http.Request) (*clientEnvelope, int, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env clientEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("malformed response: %w", err)
	}
	return &env, resp.StatusCode, nil
}

func (a *app) readLine() string {
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
