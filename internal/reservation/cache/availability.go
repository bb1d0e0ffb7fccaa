package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/reservation"
)

const keyPrefix = "ticket_avail:"

// AvailabilityCache decorates a ticket client with a short-lived redis cache
// over the availability pre-check. The pre-check is non-authoritative by
// contract, so a slightly stale answer changes nothing: the atomic Reserve
// on the ticket side still decides. Claim-changing calls invalidate the key.
type AvailabilityCache struct {
	inner  reservation.TicketClient
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func New(inner reservation.TicketClient, client *redis.Client, ttl time.Duration, log *logger.Logger) *AvailabilityCache {
	return &AvailabilityCache{inner: inner, client: client, ttl: ttl, logger: log}
}

func (c *AvailabilityCache) CheckAvailability(ctx context.Context, ticketID string) bool {
	key := keyPrefix + ticketID

	val, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return val == "1"
	}
	if err != redis.Nil {
		// Cache trouble never blocks the pre-check.
		c.logger.Warn("CACHE", fmt.Sprintf("get %s: %v", key, err))
	}

	available := c.inner.CheckAvailability(ctx, ticketID)

	cached := "0"
	if available {
		cached = "1"
	}
	if err := c.client.Set(ctx, key, cached, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", fmt.Sprintf("set %s: %v", key, err))
	}
	return available
}

func (c *AvailabilityCache) GetTicketByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	return c.inner.GetTicketByID(ctx, ticketID)
}

func (c *AvailabilityCache) Reserve(ctx context.Context, ticketID, reservationID, customerID string) (bool, string) {
	ok, msg := c.inner.Reserve(ctx, ticketID, reservationID, customerID)
	c.invalidate(ctx, ticketID)
	return ok, msg
}

func (c *AvailabilityCache) Release(ctx context.Context, ticketID, reservationID string) (bool, string) {
	ok, msg := c.inner.Release(ctx, ticketID, reservationID)
	c.invalidate(ctx, ticketID)
	return ok, msg
}

func (c *AvailabilityCache) invalidate(ctx context.Context, ticketID string) {
	if err := c.client.Del(ctx, keyPrefix+ticketID).Err(); err != nil {
		c.logger.Warn("CACHE", fmt.Sprintf("del %s: %v", keyPrefix+ticketID, err))
	}
}
