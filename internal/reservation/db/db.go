package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
)

// DB is the SQLite-backed reservation store. It targets an in-memory
// database, so state stays volatile and process-lifetime like the default
// store; it exists for deployments that want SQL queryability over the
// reservation log. The mutex serializes ID assignment the same way the
// in-memory store does.
type DB struct {
	Bun    *bun.DB
	mu     sync.Mutex
	lastID int
	logger *logger.Logger
}

// Open connects to an in-memory SQLite database and creates the
// reservations table.
func Open(log *logger.Logger) (*DB, error) {
	sqldb, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	return New(bunDB, log)
}

func New(bunDB *bun.DB, log *logger.Logger) (*DB, error) {
	_, err := bunDB.NewCreateTable().
		Model((*models.Reservation)(nil)).
		IfNotExists().
		Exec(context.Background())
	if err != nil {
		return nil, fmt.Errorf("create reservations table: %w", err)
	}

	return &DB{Bun: bunDB, lastID: 1000, logger: log}, nil
}

func (d *DB) Create(r models.Reservation) (models.Reservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastID++
	r.ID = fmt.Sprintf("R%d", d.lastID)
	r.CreatedAt = time.Now().UTC()

	if _, err := d.Bun.NewInsert().Model(&r).Exec(context.Background()); err != nil {
		d.lastID--
		return models.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}

	d.logger.LogStore("CREATE", r.ID, fmt.Sprintf("reservation for customer %s, ticket %s", r.CustomerID, r.TicketID))
	return r, nil
}

func (d *DB) GetByID(id string) (*models.Reservation, bool) {
	var r models.Reservation
	err := d.Bun.NewSelect().
		Model(&r).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			d.logger.Error("STORE", fmt.Sprintf("select reservation %s: %v", id, err))
		}
		return nil, false
	}
	return &r, true
}

func (d *DB) GetByCustomerID(customerID string) []models.Reservation {
	var reservations []models.Reservation
	err := d.Bun.NewSelect().
		Model(&reservations).
		Where("customer_id = ?", customerID).
		Scan(context.Background())
	if err != nil {
		d.logger.Error("STORE", fmt.Sprintf("select reservations for customer %s: %v", customerID, err))
		return nil
	}
	return reservations
}

func (d *DB) UpdateStatus(id, status string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.Bun.NewUpdate().
		Model((*models.Reservation)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		d.logger.Error("STORE", fmt.Sprintf("update reservation %s: %v", id, err))
		return false
	}

	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		d.logger.Warn("STORE", fmt.Sprintf("status update failed: reservation %s not found", id))
		return false
	}

	d.logger.LogStore("STATUS", id, fmt.Sprintf("status set to %s", status))
	return true
}

func (d *DB) Close() error {
	return d.Bun.Close()
}
