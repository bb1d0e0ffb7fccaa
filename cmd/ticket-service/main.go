package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"ticket-reservation/internal/config"
	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/tickets"
	"ticket-reservation/internal/tickets/store"
	"ticket-reservation/internal/tickets/ticket_api"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	port := os.Getenv("TICKET_SERVICE_PORT")
	if port == "" {
		port = ":8081"
	}

	log := logger.NewLogger("ticket-service")
	defer log.Close()

	ticketStore := store.NewTicketStore(log)
	service := tickets.NewTicketService(ticketStore, log)
	handler := ticket_api.NewHandler(service, log)

	r := chi.NewRouter()
	r.Mount("/api/v1/tickets", handler.Routes())

	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "Ticket Service running on "+port)
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
	log.Info("SERVER", "ticket service exited gracefully")
}
