package suggest_reschedule_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/types"
	"github.com/janjikita/booking-service/internal/service/appointments"
)

const (
	msgInvalidRequestBody  = "data permintaan tidak valid"
	msgInvalidDateTime     = "format tanggal atau jam tidak valid"
	msgAppointmentNotFound = "booking tidak ditemukan"
	msgTerminalStatus      = "booking yang sudah selesai atau dibatalkan tidak dapat dijadwalkan ulang"
	msgNoRequest           = "belum ada permintaan penjadwalan ulang untuk booking ini"
)

type suggestSlotRequest struct {
	Date    string  `json:"date"`      // "2026-09-15"
	Time    string  `json:"time"`      // "14:00"
	Message *string `json:"message,omitempty"`
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

// Handle POST /api/v1/appointments/{id}/suggest-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req suggestSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}
	slotTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}
	slot, err := slotTime.At(date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.SuggestRescheduleSlot(r.Context(), id, slot, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrTerminalStatus):
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)
		case errors.Is(err, appointments.ErrNoRescheduleRequest):
			handlers.RespondError(w, http.StatusConflict, msgNoRequest)
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /appointments/{id}/suggest-slot - failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/suggest-slot - suggested: id=%s, slot=%s %s", id, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, result)
}
