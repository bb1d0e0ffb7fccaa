package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/reservation/store"
)

func newTestStore() *store.ReservationStore {
	return store.NewReservationStore(logger.NewLogger("reservation-store-test"))
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore()

	first, err := s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)
	second, err := s.Create(models.Reservation{CustomerID: "C2", TicketID: "T1002", Status: models.StatusReserved})
	require.NoError(t, err)

	assert.Equal(t, "R1001", first.ID)
	assert.Equal(t, "R1002", second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	stored, ok := s.GetByID("R1001")
	require.True(t, ok)
	assert.Equal(t, "C1", stored.CustomerID)
	assert.Equal(t, "T1001", stored.TicketID)
}

func TestConcurrentCreates_UniqueIDs(t *testing.T) {
	s := newTestStore()

	const numGoroutines = 100
	var wg sync.WaitGroup
	ids := make(chan string, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
			assert.NoError(t, err)
			ids <- r.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate reservation id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, numGoroutines)
}

func TestGetByID(t *testing.T) {
	s := newTestStore()

	_, ok := s.GetByID("R1001")
	assert.False(t, ok)

	created, err := s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)

	stored, ok := s.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusReserved, stored.Status)

	// Mutating the returned copy must not touch the stored row.
	stored.Status = models.StatusPaid
	again, _ := s.GetByID(created.ID)
	assert.Equal(t, models.StatusReserved, again.Status)
}

func TestGetByCustomerID(t *testing.T) {
	s := newTestStore()

	_, err := s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)
	_, err = s.Create(models.Reservation{CustomerID: "C2", TicketID: "T1002", Status: models.StatusReserved})
	require.NoError(t, err)
	_, err = s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1003", Status: models.StatusFailed})
	require.NoError(t, err)

	reservations := s.GetByCustomerID("C1")
	assert.Len(t, reservations, 2)

	assert.Empty(t, s.GetByCustomerID("C9"))
}

func TestUpdateStatus(t *testing.T) {
	s := newTestStore()

	assert.False(t, s.UpdateStatus("R1001", models.StatusPaid))

	created, err := s.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)

	assert.True(t, s.UpdateStatus(created.ID, models.StatusPaid))
	stored, _ := s.GetByID(created.ID)
	assert.Equal(t, models.StatusPaid, stored.Status)
}
