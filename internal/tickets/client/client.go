package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"ticket-reservation/internal/config"
	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// ErrTicketNotFound marks a hard 404 from the ticket service, as opposed to
// transport faults or business-rule rejections.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketClient is the remote-call adapter for the ticket service. Transport
// failures are folded into the same failure shapes the orchestrator already
// branches on: false for Reserve/Release and the availability hint, error for
// lookups.
type TicketClient struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func New(cfg config.TicketServiceConfig, log *logger.Logger) *TicketClient {
	return &TicketClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  log,
	}
}

// envelope mirrors utils.APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// CheckAvailability is a hint, not a guarantee: the answer can be stale by
// the time the orchestrator acts on it, and any failure to get an answer
// counts as unavailable.
func (c *TicketClient) CheckAvailability(ctx context.Context, ticketID string) bool {
	env, status, err := c.get(ctx, fmt.Sprintf("/api/v1/tickets/%s/availability", ticketID))
	if err != nil {
		c.logger.Error("CLIENT", fmt.Sprintf("CheckAvailability %s: %v", ticketID, err))
		return false
	}
	if status != http.StatusOK || !env.Success {
		return false
	}

	var avail models.AvailabilityResponse
	if err := json.Unmarshal(env.Data, &avail); err != nil {
		c.logger.Error("CLIENT", fmt.Sprintf("CheckAvailability %s: bad payload: %v", ticketID, err))
		return false
	}
	return avail.Available
}

func (c *TicketClient) GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	env, status, err := c.get(ctx, fmt.Sprintf("/api/v1/tickets/%s", ticketID))
	if err != nil {
		return nil, fmt.Errorf("ticket service unreachable: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, ErrTicketNotFound
	}
	if status != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("ticket service error: %s", env.Message)
	}

	var ticket models.Ticket
	if err := json.Unmarshal(env.Data, &ticket); err != nil {
		return nil, fmt.Errorf("decode ticket %s: %w", ticketID, err)
	}
	return &ticket, nil
}

func (c *TicketClient) GetAllTickets(ctx context.Context) ([]models.TicketInfo, error) {
	env, status, err := c.get(ctx, "/api/v1/tickets")
	if err != nil {
		return nil, fmt.Errorf("ticket service unreachable: %w", err)
	}
	if status != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("ticket service error: %s", env.Message)
	}

	var infos []models.TicketInfo
	if err := json.Unmarshal(env.Data, &infos); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return infos, nil
}

func (c *TicketClient) Reserve(ctx context.Context, ticketID, reservationID, customerID string) (bool, string) {
	body := models.ReserveTicketRequest{ReservationID: reservationID, CustomerID: customerID}
	return c.post(ctx, fmt.Sprintf("/api/v1/tickets/%s/reserve", ticketID), body)
}

func (c *TicketClient) Release(ctx context.Context, ticketID, reservationID string) (bool, string) {
	body := models.ReleaseTicketRequest{ReservationID: reservationID}
	return c.post(ctx, fmt.Sprintf("/api/v1/tickets/%s/release", ticketID), body)
}

func (c *TicketClient) get(ctx context.Context, path string) (*envelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("malformed response: %w", err)
	}
	return &env, resp.StatusCode, nil
}

// post sends a mutating call and folds any transport failure into the soft
// (false, message) shape.
func (c *TicketClient) post(ctx context.Context, path string, body interface{}) (bool, string) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Sprintf("encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Sprintf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("CLIENT", fmt.Sprintf("POST %s: %v", path, err))
		return false, fmt.Sprintf("ticket service unreachable: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Error("CLIENT", fmt.Sprintf("POST %s: malformed response: %v", path, err))
		return false, fmt.Sprintf("malformed response from ticket service: %v", err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return false, msg
	}
	return true, env.Message
}
