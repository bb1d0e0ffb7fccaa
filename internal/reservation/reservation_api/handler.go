package reservation_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticket-reservation/internal/logger"
	"ticket-reservation/internal/models"
	"ticket-reservation/internal/reservation"
	"ticket-reservation/internal/utils"
)

type Handler struct {
	Service *reservation.Service
	Logger  *logger.Logger
}

func NewHandler(service *reservation.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/reservations", h.CreateReservation)
	r.Get("/reservations/{reservationId}", h.GetReservation)
	r.Delete("/reservations/{reservationId}", h.CancelReservation)
	r.Post("/reservations/{reservationId}/payment", h.ConfirmPayment)
	r.Get("/customers/{customerId}/reservations", h.GetCustomerReservations)
	return r
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateReservation: bad request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	res := h.Service.CreateReservation(r.Context(), req)
	if !res.Success {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(res.Message, res.Message))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(res.Message, res.Reservation))
}

// GetReservation fails hard on an unknown id; business-rule rejections on
// the mutating endpoints fail soft instead.
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "reservationId")

	res, err := h.Service.GetReservation(reservationID)
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("reservation not found", fmt.Sprintf("Reservation with ID %s not found", reservationID)))
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to retrieve reservation", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("reservation retrieved", res))
}

func (h *Handler) GetCustomerReservations(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	reservations := h.Service.GetCustomerReservations(customerID)
	h.Logger.LogAPI("GET", "/customers/"+customerID+"/reservations", fmt.Sprintf("returning %d reservations", len(reservations)))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("reservations retrieved", reservations))
}

func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "reservationId")

	res := h.Service.CancelReservation(r.Context(), reservationID)
	if !res.Success {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(res.Message, res.Message))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(res.Message, res.Reservation))
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "reservationId")

	var req models.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ConfirmPayment: bad request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	res := h.Service.ConfirmPayment(r.Context(), reservationID, req.PaymentMethod)
	if !res.Success {
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(res.Message, res.Message))
		return
	}

	confirmation := models.PaymentConfirmation{
		ReservationID: reservationID,
		TicketID:      res.Reservation.TicketID,
		PaymentMethod: req.PaymentMethod,
		QRCode:        res.QRCode,
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(res.Message, confirmation))
}
