package manage_staff

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	catalogService "github.com/janjikita/booking-service/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "data permintaan tidak valid"
	msgBusinessNotFound   = "bisnis tidak ditemukan"
	msgStaffNotFound      = "staf tidak ditemukan"
	msgCapacityExceeded   = "batas paket langganan tercapai, silakan upgrade paket"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/businesses/{businessId}/staff
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req staffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateStaff(r.Context(), businessID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.respondServiceError(w, "POST /businesses/{businessId}/staff", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, fromDomainStaff(created))
}

// HandleList GET /api/v1/businesses/{businessId}/staff?activeOnly=true
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	staff, err := h.service.GetStaff(r.Context(), businessID, activeOnly)
	if err != nil {
		h.respondServiceError(w, "GET /businesses/{businessId}/staff", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainStaffList(staff))
}

// HandleUpdate PUT /api/v1/businesses/{businessId}/staff/{staffId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	staffID := vars["staffId"]

	var req staffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateStaff(r.Context(), businessID, staffID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.respondServiceError(w, "PUT /businesses/{businessId}/staff/{staffId}", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainStaff(updated))
}

// HandleSetActive PATCH /api/v1/businesses/{businessId}/staff/{staffId}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	staffID := vars["staffId"]

	var req setActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetStaffActive(r.Context(), businessID, staffID, req.IsActive); err != nil {
		h.respondServiceError(w, "PATCH /businesses/{businessId}/staff/{staffId}/active", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op, businessID string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, catalogService.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, catalogService.ErrCapacityExceeded):
		handlers.RespondError(w, http.StatusForbidden, msgCapacityExceeded)
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - failed: business=%s, error=%v", op, businessID, err)
		handlers.RespondInternalError(w)
	}
}
