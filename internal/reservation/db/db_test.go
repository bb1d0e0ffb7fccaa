package db_test

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/reservation/db"
)

// setupTestDB opens a test-scoped in-memory SQLite database. Each test gets
// its own named database so ID counters never collide across tests.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	sqldb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	store, err := db.New(bunDB, logger.NewLogger("reservation-db-test"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGetByID(t *testing.T) {
	store := setupTestDB(t)

	created, err := store.Create(models.Reservation{
		CustomerID:    "C1",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		TicketID:      "T1001",
		EventName:     "Rock Concert",
		Price:         85.50,
		Status:        models.StatusReserved,
	})
	require.NoError(t, err)
	assert.Equal(t, "R1001", created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	stored, ok := store.GetByID("R1001")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", stored.CustomerName)
	assert.Equal(t, models.StatusReserved, stored.Status)

	_, ok = store.GetByID("R9999")
	assert.False(t, ok)
}

func TestSequentialIDs(t *testing.T) {
	store := setupTestDB(t)

	for i := 1; i <= 3; i++ {
		r, err := store.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R%d", 1000+i), r.ID)
	}
}

func TestGetByCustomerID(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)
	_, err = store.Create(models.Reservation{CustomerID: "C2", TicketID: "T1002", Status: models.StatusReserved})
	require.NoError(t, err)
	_, err = store.Create(models.Reservation{CustomerID: "C1", TicketID: "T1003", Status: models.StatusFailed})
	require.NoError(t, err)

	reservations := store.GetByCustomerID("C1")
	assert.Len(t, reservations, 2)
	// Failed attempts stay in the audit trail.
	statuses := []string{reservations[0].Status, reservations[1].Status}
	assert.Contains(t, statuses, models.StatusFailed)

	assert.Empty(t, store.GetByCustomerID("C9"))
}

func TestUpdateStatus(t *testing.T) {
	store := setupTestDB(t)

	assert.False(t, store.UpdateStatus("R1001", models.StatusPaid))

	created, err := store.Create(models.Reservation{CustomerID: "C1", TicketID: "T1001", Status: models.StatusReserved})
	require.NoError(t, err)

	assert.True(t, store.UpdateStatus(created.ID, models.StatusPaid))

	stored, ok := store.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPaid, stored.Status)
}
