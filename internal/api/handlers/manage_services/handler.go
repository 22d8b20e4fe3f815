package manage_services

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
	msgServiceNotFound    = "layanan tidak ditemukan"
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

// HandleCreate POST /api/v1/businesses/{businessId}/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req serviceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.CreateService(r.Context(), businessID, req.Name, req.Description, req.DurationMinutes, req.Price)
	if err != nil {
		h.respondServiceError(w, "POST /businesses/{businessId}/services", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, fromDomainService(created))
}

// HandleList GET /api/v1/businesses/{businessId}/services?activeOnly=true
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	services, err := h.service.GetServices(r.Context(), businessID, activeOnly)
	if err != nil {
		h.respondServiceError(w, "GET /businesses/{businessId}/services", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainServices(services))
}

// HandleUpdate PUT /api/v1/businesses/{businessId}/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	serviceID := vars["serviceId"]

	var req serviceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateService(r.Context(), businessID, serviceID, req.Name, req.Description, req.DurationMinutes, req.Price)
	if err != nil {
		h.respondServiceError(w, "PUT /businesses/{businessId}/services/{serviceId}", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainService(updated))
}

// HandleSetActive PATCH /api/v1/businesses/{businessId}/services/{serviceId}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID := vars["businessId"]
	serviceID := vars["serviceId"]

	var req setActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetServiceActive(r.Context(), businessID, serviceID, req.IsActive); err != nil {
		h.respondServiceError(w, "PATCH /businesses/{businessId}/services/{serviceId}/active", businessID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op, businessID string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrBusinessNotFound):
		handlers.RespondNotFound(w, msgBusinessNotFound)
	case errors.Is(err, catalogService.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, catalogService.ErrCapacityExceeded):
		handlers.RespondError(w, http.StatusForbidden, msgCapacityExceeded)
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - failed: business=%s, error=%v", op, businessID, err)
		handlers.RespondInternalError(w)
	}
}
