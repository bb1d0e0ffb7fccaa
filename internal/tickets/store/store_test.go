package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/tickets/store"
)

func newTestStore() *store.TicketStore {
	return store.NewTicketStore(logger.NewLogger("ticket-store-test"))
}

func TestSeededTickets(t *testing.T) {
	s := newTestStore()

	tickets := s.GetAll()
	assert.Len(t, tickets, 5)
	for _, ticket := range tickets {
		assert.True(t, ticket.Available, "seeded tickets start available")
		assert.Empty(t, ticket.ReservationID)
		assert.Empty(t, ticket.CustomerID)
	}

	ticket, ok := s.GetByID("T1001")
	require.True(t, ok)
	assert.Equal(t, "Rock Concert", ticket.EventName)
	assert.Equal(t, 85.50, ticket.Price)

	_, ok = s.GetByID("T9999")
	assert.False(t, ok)
}

func TestIsAvailable(t *testing.T) {
	s := newTestStore()

	assert.True(t, s.IsAvailable("T1001"))
	// Unknown tickets report unavailable rather than erroring.
	assert.False(t, s.IsAvailable("T9999"))

	require.True(t, s.Reserve("T1001", "R1001", "C1"))
	assert.False(t, s.IsAvailable("T1001"))
}

func TestReserve(t *testing.T) {
	s := newTestStore()

	assert.True(t, s.Reserve("T1001", "R1001", "C1"))

	ticket, ok := s.GetByID("T1001")
	require.True(t, ok)
	assert.False(t, ticket.Available)
	assert.Equal(t, "R1001", ticket.ReservationID)
	assert.Equal(t, "C1", ticket.CustomerID)

	// Second claim fails with no mutation.
	assert.False(t, s.Reserve("T1001", "R1002", "C2"))
	ticket, _ = s.GetByID("T1001")
	assert.Equal(t, "R1001", ticket.ReservationID)

	// Unknown ticket fails.
	assert.False(t, s.Reserve("T9999", "R1003", "C3"))
}

func TestRelease(t *testing.T) {
	s := newTestStore()

	// Releasing an available ticket fails.
	assert.False(t, s.Release("T1001", "R1001"))

	require.True(t, s.Reserve("T1001", "R1001", "C1"))

	// Wrong claimant fails with no mutation.
	assert.False(t, s.Release("T1001", "R1002"))
	ticket, _ := s.GetByID("T1001")
	assert.False(t, ticket.Available)

	// Exact match releases and clears the claimant.
	assert.True(t, s.Release("T1001", "R1001"))
	ticket, _ = s.GetByID("T1001")
	assert.True(t, ticket.Available)
	assert.Empty(t, ticket.ReservationID)
	assert.Empty(t, ticket.CustomerID)

	// Unknown ticket fails.
	assert.False(t, s.Release("T9999", "R1001"))
}

func TestConcurrentReserve_ExactlyOneWinner(t *testing.T) {
	s := newTestStore()

	const numGoroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := []string{}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			reservationID := fmt.Sprintf("R%d", 2000+n)
			if s.Reserve("T1003", reservationID, fmt.Sprintf("C%d", n)) {
				mu.Lock()
				winners = append(winners, reservationID)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, winners, 1, "exactly one concurrent Reserve must win")

	ticket, ok := s.GetByID("T1003")
	require.True(t, ok)
	assert.False(t, ticket.Available)
	assert.Equal(t, winners[0], ticket.ReservationID)
}

func TestReserveReleaseCycle(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 10; i++ {
		reservationID := fmt.Sprintf("R%d", 3000+i)
		require.True(t, s.Reserve("T1002", reservationID, "C1"), "cycle %d reserve", i)
		require.True(t, s.Release("T1002", reservationID), "cycle %d release", i)
	}
	assert.True(t, s.IsAvailable("T1002"))
}
