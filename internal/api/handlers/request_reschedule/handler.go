package request_reschedule

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
	msgTerminalStatus      = "booking yang sudah selesai atau dibatalkan tidak dapat dijadwalkan ulang"
)

type requestRescheduleRequest struct {
	Reason string `json:"reason"`
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

// Handle POST /api/v1/appointments/{id}/reschedule-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req requestRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RequestReschedule(r.Context(), id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrTerminalStatus):
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /appointments/{id}/reschedule-request - failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/reschedule-request - requested: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
