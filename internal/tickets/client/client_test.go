package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-reservation/internal/config"
	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/tickets"
	"ticket-reservation/internal/tickets/client"
	"ticket-reservation/internal/tickets/store"
	"ticket-reservation/internal/tickets/ticket_api"
)

// setupClient runs the real ticket service behind httptest and points a
// TicketClient at it.
func setupClient(t *testing.T) *client.TicketClient {
	t.Helper()

	log := logger.NewLogger("ticket-client-test")
	ticketStore := store.NewTicketStore(log)
	service := tickets.NewTicketService(ticketStore, log)
	handler := ticket_api.NewHandler(service, log)

	r := chi.NewRouter()
	r.Mount("/api/v1/tickets", handler.Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return client.New(config.TicketServiceConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, log)
}

func TestCheckAvailability(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	assert.True(t, c.CheckAvailability(ctx, "T1001"))
	assert.False(t, c.CheckAvailability(ctx, "T9999"))

	ok, _ := c.Reserve(ctx, "T1001", "R1001", "C1")
	require.True(t, ok)
	assert.False(t, c.CheckAvailability(ctx, "T1001"))
}

func TestGetTicketByID(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	ticket, err := c.GetTicketByID(ctx, "T1001")
	require.NoError(t, err)
	assert.Equal(t, "Rock Concert", ticket.EventName)
	assert.Equal(t, 85.50, ticket.Price)

	_, err = c.GetTicketByID(ctx, "T9999")
	assert.ErrorIs(t, err, client.ErrTicketNotFound)
}

func TestGetAllTickets(t *testing.T) {
	c := setupClient(t)

	infos, err := c.GetAllTickets(context.Background())
	require.NoError(t, err)
	assert.Len(t, infos, 5)
}

func TestReserveAndRelease(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	ok, msg := c.Reserve(ctx, "T1002", "R1001", "C1")
	assert.True(t, ok)
	assert.Contains(t, msg, "successfully reserved")

	// A second claim is a business rejection, not an error.
	ok, msg = c.Reserve(ctx, "T1002", "R1002", "C2")
	assert.False(t, ok)
	assert.Contains(t, msg, "Failed to reserve")

	// Only the claimant can release.
	ok, _ = c.Release(ctx, "T1002", "R1002")
	assert.False(t, ok)

	ok, msg = c.Release(ctx, "T1002", "R1001")
	assert.True(t, ok)
	assert.Contains(t, msg, "successfully released")
}

func TestTransportFailuresFoldSoft(t *testing.T) {
	log := logger.NewLogger("ticket-client-test")
	// Nothing listens here.
	c := client.New(config.TicketServiceConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, log)
	ctx := context.Background()

	assert.False(t, c.CheckAvailability(ctx, "T1001"))

	ok, msg := c.Reserve(ctx, "T1001", "R1001", "C1")
	assert.False(t, ok)
	assert.Contains(t, msg, "ticket service unreachable")

	ok, msg = c.Release(ctx, "T1001", "R1001")
	assert.False(t, ok)
	assert.Contains(t, msg, "ticket service unreachable")

	_, err := c.GetTicketByID(ctx, "T1001")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, client.ErrTicketNotFound)
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := client.New(config.TicketServiceConfig{
		BaseURL: server.URL,
		Timeout: time.Second,
	}, logger.NewLogger("ticket-client-test"))
	ctx := context.Background()

	assert.False(t, c.CheckAvailability(ctx, "T1001"))

	ok, msg := c.Reserve(ctx, "T1001", "R1001", "C1")
	assert.False(t, ok)
	assert.Contains(t, msg, "malformed response")
}
