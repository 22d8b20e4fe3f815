package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
	getSlots "github.com/janjikita/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate      = "format tanggal tidak valid, gunakan YYYY-MM-DD"
	msgServiceRequired  = "serviceId wajib diisi"
	msgBusinessNotFound = "bisnis tidak ditemukan"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/slots?serviceId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]
	serviceID := r.URL.Query().Get("serviceId")
	dateParam := r.URL.Query().Get("date")
	staffParam := r.URL.Query().Get("staffId")

	if serviceID == "" {
		handlers.RespondBadRequest(w, msgServiceRequired)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /slots - invalid date %q: %v", dateParam, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	ucReq := &getSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}
	if staffParam != "" {
		ucReq.StaffID = &staffParam
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, getSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /slots - failed: business=%s, service=%s, error=%v", businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, dateParam))
}
