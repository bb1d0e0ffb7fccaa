package ticket_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/tickets"
	"ticket-reservation/internal/utils"
)

type Handler struct {
	TicketService *tickets.TicketService
	Logger        *logger.Logger
}

func NewHandler(service *tickets.TicketService, log *logger.Logger) *Handler {
	return &Handler{TicketService: service, Logger: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetAllTickets)
	r.Get("/{ticketId}", h.GetTicket)
	r.Get("/{ticketId}/availability", h.CheckAvailability)
	r.Post("/{ticketId}/reserve", h.ReserveTicket)
	r.Post("/{ticketId}/release", h.ReleaseTicket)
	return r
}

func (h *Handler) GetAllTickets(w http.ResponseWriter, r *http.Request) {
	infos := h.TicketService.GetAllTickets()
	h.Logger.LogAPI("GET", "/tickets", fmt.Sprintf("returning %d tickets", len(infos)))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets retrieved", infos))
}

// GetTicket is a direct lookup: an unknown id is a hard 404, not a soft
// failure.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	ticket, ok := h.TicketService.GetTicket(ticketID)
	if !ok {
		h.Logger.Warn("API", fmt.Sprintf("GetTicket: ticket %s not found", ticketID))
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("ticket not found", fmt.Sprintf("Ticket with ID %s not found", ticketID)))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket retrieved", ticket))
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	available := h.TicketService.CheckAvailability(ticketID)
	h.Logger.LogAPI("GET", "/tickets/"+ticketID+"/availability", fmt.Sprintf("available=%t", available))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("availability checked", models.AvailabilityResponse{
		TicketID:  ticketID,
		Available: available,
	}))
}

func (h *Handler) ReserveTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	var req models.ReserveTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ReserveTicket: bad request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	ok, msg := h.TicketService.Reserve(ticketID, req.ReservationID, req.CustomerID)
	if !ok {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(msg, msg))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(msg, nil))
}

func (h *Handler) ReleaseTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketId")

	var req models.ReleaseTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ReleaseTicket: bad request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	ok, msg := h.TicketService.Release(ticketID, req.ReservationID)
	if !ok {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(msg, msg))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(msg, nil))
}
