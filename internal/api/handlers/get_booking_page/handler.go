package get_booking_page

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

const (
	msgBusinessNotFound = "bisnis tidak ditemukan"
	msgPhoneRequired    = "nomor telepon wajib diisi"
)

type Handler struct {
	businessService     BusinessService
	appointmentsService AppointmentsService
	logger              Logger
}

func NewHandler(business BusinessService, appointments AppointmentsService, logger Logger) *Handler {
	return &Handler{
		businessService:     business,
		appointmentsService: appointments,
		logger:              logger,
	}
}

// Handle GET /api/v1/public/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	page, err := h.businessService.GetBookingPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, businessService.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /public/{slug} - failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, page)
}

// HandleCustomerAppointments GET /api/v1/public/{slug}/appointments?phone=...
// Lets customers look up their bookings without an account.
func (h *Handler) HandleCustomerAppointments(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	phone := r.URL.Query().Get("phone")

	if phone == "" {
		handlers.RespondBadRequest(w, msgPhoneRequired)
		return
	}

	page, err := h.businessService.GetBookingPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, businessService.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /public/{slug}/appointments - failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.appointmentsService.GetCustomerAppointments(r.Context(), page.Business.ID, phone)
	if err != nil {
		h.logger.Error("GET /public/{slug}/appointments - failed: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
