package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	createAppointment "github.com/janjikita/booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "data permintaan tidak valid"
	msgInvalidDateTime    = "format tanggal atau jam tidak valid"
	msgBusinessNotFound   = "bisnis tidak ditemukan"
	msgServiceNotFound    = "layanan tidak ditemukan"
	msgStaffNotFound      = "staf tidak ditemukan"
	msgBusinessClosed     = "bisnis tutup pada tanggal tersebut"
	msgOutsideHours       = "jam yang dipilih di luar jam operasional"
	msgSlotNotAvailable   = "jadwal yang dipilih sudah terisi"
	msgNoStaffAvailable   = "tidak ada staf yang tersedia pada jam tersebut"
	msgInvalidDate        = "tanggal booking tidak valid"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /appointments - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - slot not available: business=%s", businessID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrNoStaffAvailable):
			h.logger.Warn("POST /appointments - no staff available: business=%s", businessID)
			handlers.RespondError(w, http.StatusConflict, msgNoStaffAvailable)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrBusinessClosed):
			handlers.RespondBadRequest(w, msgBusinessClosed)

		case errors.Is(err, createAppointment.ErrOutsideOperatingHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - failed: business=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - created: appointment=%s, business=%s", result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
