package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"ticket-reservation/internal/config"
	"ticket-reservation/internal/kafka"
	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/reservation"
	"ticket-reservation/internal/reservation/cache"
	"ticket-reservation/internal/reservation/db"
	"ticket-reservation/internal/reservation/reservation_api"
	"ticket-reservation/internal/reservation/store"
	"ticket-reservation/internal/tickets/client"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger("reservation-service")
	defer log.Close()

	// --- Reservation store ---
	var resStore reservation.Store
	switch cfg.Store.Backend {
	case "sqlite":
		sqliteStore, err := db.Open(log)
		if err != nil {
			log.Fatal("STORE", "failed to open sqlite store: "+err.Error())
		}
		defer sqliteStore.Close()
		resStore = sqliteStore
		log.Info("STORE", "using sqlite reservation store")
	default:
		resStore = store.NewReservationStore(log)
		log.Info("STORE", "using in-memory reservation store")
	}

	// --- Ticket service facade ---
	var ticketClient reservation.TicketClient = client.New(cfg.TicketService, log)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("REDIS", "failed to connect to redis: "+err.Error())
		}
		ticketClient = cache.New(ticketClient, redisClient, cfg.Redis.HintTTL, log)
		log.Info("REDIS", "availability-hint cache enabled")
	}

	// --- Kafka ---
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		if err := kafka.EnsureTopicsExist(cfg.Kafka); err != nil {
			log.Warn("KAFKA", "topic creation failed: "+err.Error())
		}
	}
	producer := kafka.NewProducer(cfg.Kafka, log)
	defer producer.Close()

	// --- Orchestrator and routes ---
	service := reservation.NewService(resStore, ticketClient, producer, log)
	handler := reservation_api.NewHandler(service, log)

	r := chi.NewRouter()
	r.Mount("/api/v1", handler.Routes())

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "Reservation Service running on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "HTTP server error: "+err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SERVER", "shutdown signal received")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("SERVER", "forced shutdown: "+err.Error())
	}
	log.Info("SERVER", "reservation service exited gracefully")
}
