package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/service/appointments"
)

const (
	msgInvalidRequestBody  = "data permintaan tidak valid"
	msgAppointmentNotFound = "booking tidak ditemukan"
	msgInvalidStatus       = "status tidak valid"
	msgTerminalStatus      = "booking yang sudah selesai atau dibatalkan tidak dapat diubah"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondServiceError(w, "PATCH /appointments/{id}/status", id, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - updated: id=%s, status=%s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePayment PATCH /api/v1/appointments/{id}/payment
func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePaymentStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondServiceError(w, "PATCH /appointments/{id}/payment", id, err)
		return
	}

	h.logger.Info("PATCH /appointments/{id}/payment - updated: id=%s, status=%s", id, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op, id string, err error) {
	switch {
	case errors.Is(err, appointments.ErrAppointmentNotFound):
		handlers.RespondNotFound(w, msgAppointmentNotFound)
	case errors.Is(err, appointments.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	case errors.Is(err, appointments.ErrTerminalStatus):
		handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)
	case errors.Is(err, appointments.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - failed: id=%s, error=%v", op, id, err)
		handlers.RespondInternalError(w)
	}
}
