package manage_business

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

const (
	msgInvalidRequestBody = "data permintaan tidak valid"
	msgBusinessNotFound   = "bisnis tidak ditemukan"
	msgInvalidTier        = "paket langganan tidak valid"
)

type Handler struct {
	businessService BusinessService
	catalogService  CatalogService
	logger          Logger
}

func NewHandler(business BusinessService, catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		businessService: business,
		catalogService:  catalog,
		logger:          logger,
	}
}

// HandleGet GET /api/v1/businesses/{businessId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	business, err := h.businessService.GetByID(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, businessService.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /businesses/{businessId} - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, business)
}

// HandleUpdateProfile PATCH /api/v1/businesses/{businessId}
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req updateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.businessService.UpdateProfile(r.Context(), businessID, req.Name, req.Description, req.Phone, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, businessService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /businesses/{businessId} - failed: business=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{businessId} - updated: business=%s", businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleGetHours GET /api/v1/businesses/{businessId}/hours
func (h *Handler) HandleGetHours(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	hours, err := h.businessService.GetOperatingHours(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{businessId}/hours - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainHours(hours))
}

// HandleUpdateHours PUT /api/v1/businesses/{businessId}/hours
func (h *Handler) HandleUpdateHours(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req hoursUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	hours, err := h.businessService.UpdateOperatingHours(r.Context(), businessID, req.toServiceUpdates())
	if err != nil {
		if errors.Is(err, businessService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("PUT /businesses/{businessId}/hours - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /businesses/{businessId}/hours - updated: business=%s", businessID)
	handlers.RespondJSON(w, http.StatusOK, fromDomainHours(hours))
}

// HandleChangeSubscription POST /api/v1/businesses/{businessId}/subscription
func (h *Handler) HandleChangeSubscription(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req changeSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sub, err := h.businessService.ChangeSubscription(r.Context(), businessID, req.Tier)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)
		case errors.Is(err, businessService.ErrInvalidTier):
			handlers.RespondBadRequest(w, msgInvalidTier)
		default:
			h.logger.Error("POST /businesses/{businessId}/subscription - failed: business=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{businessId}/subscription - changed: business=%s, tier=%s", businessID, req.Tier)
	handlers.RespondJSON(w, http.StatusOK, sub)
}

// HandleCapacity GET /api/v1/businesses/{businessId}/capacity
func (h *Handler) HandleCapacity(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	usage, err := h.catalogService.GetCapacityUsage(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{businessId}/capacity - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, usage)
}
