package get_business_appointments

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
)

const msgInvalidDate = "format tanggal tidak valid, gunakan YYYY-MM-DD"

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

// Handle GET /api/v1/businesses/{businessId}/appointments?date=YYYY-MM-DD&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var date *time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse(domain.DateFormat, dateParam)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}
	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	result, err := h.service.GetBusinessAppointments(r.Context(), businessID, date, includeCancelled)
	if err != nil {
		h.logger.Error("GET /businesses/{businessId}/appointments - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStats GET /api/v1/businesses/{businessId}/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	stats, err := h.service.GetDashboardStats(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{businessId}/stats - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
