package confirm_reschedule

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
	confirmReschedule "github.com/janjikita/booking-service/internal/usecase/confirm_reschedule"
)

const (
	msgAppointmentNotFound = "booking tidak ditemukan"
	msgInvalidRequestBody  = "data permintaan tidak valid"
	msgNoSuggestedSlot     = "belum ada usulan jadwal baru untuk booking ini"
	msgTerminalStatus      = "booking yang sudah selesai atau dibatalkan tidak dapat dijadwalkan ulang"
	msgSlotNotAvailable    = "jadwal yang diusulkan sudah terisi, silakan minta jadwal baru"
)

// confirmRequest carries the agreed interval. An empty body accepts
// the business's suggested slot as-is.
type confirmRequest struct {
	NewStartTime *time.Time `json:"newStartTime"`
	NewEndTime   *time.Time `json:"newEndTime"`
}

type confirmResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

type Handler struct {
	useCase ConfirmRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/confirm-reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body confirmRequest
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /appointments/{id}/confirm-reschedule - bad body: id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReschedule.Request{
		AppointmentID: id,
		NewStartTime:  body.NewStartTime,
		NewEndTime:    body.NewEndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReschedule.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, confirmReschedule.ErrNoSuggestedSlot):
			handlers.RespondError(w, http.StatusConflict, msgNoSuggestedSlot)
		case errors.Is(err, confirmReschedule.ErrTerminalStatus):
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)
		case errors.Is(err, confirmReschedule.ErrSlotNotAvailable):
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)
		case errors.Is(err, confirmReschedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /appointments/{id}/confirm-reschedule - failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm-reschedule - confirmed: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, confirmResponse{
		ID:        result.ID,
		Date:      result.StartTime.Format(domain.DateFormat),
		StartTime: result.StartTime.Format(domain.TimeFormat),
		EndTime:   result.EndTime.Format(domain.TimeFormat),
		Status:    result.Status,
	})
}
