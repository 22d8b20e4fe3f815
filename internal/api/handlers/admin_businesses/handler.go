package admin_businesses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

const (
	msgInvalidRequestBody = "data permintaan tidak valid"
	msgBusinessNotFound   = "bisnis tidak ditemukan"
)

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type businessEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Category         string `json:"category"`
	OwnerEmail       string `json:"ownerEmail"`
	IsActive         bool   `json:"isActive"`
	SubscriptionTier string `json:"subscriptionTier"`
	CreatedAt        string `json:"createdAt"`
}

type businessListResponse struct {
	Businesses []*businessEntry `json:"businesses"`
}

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/businesses
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.service.ListBusinesses(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/businesses - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainList(businesses))
}

// HandleSetActive PATCH /api/v1/admin/businesses/{businessId}/active
func (h *Handler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	var req setActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetBusinessActive(r.Context(), businessID, req.IsActive); err != nil {
		if errors.Is(err, businessService.ErrBusinessNotFound) {
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("PATCH /admin/businesses/{businessId}/active - failed: business=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /admin/businesses/{businessId}/active - set: business=%s, active=%t", businessID, req.IsActive)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleStats GET /api/v1/admin/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetPlatformStats(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

func fromDomainList(businesses []*domain.Business) *businessListResponse {
	entries := make([]*businessEntry, len(businesses))
	for i, b := range businesses {
		entries[i] = &businessEntry{
			ID:               b.ID,
			Name:             b.Name,
			Slug:             b.Slug,
			Category:         string(b.Category),
			OwnerEmail:       b.OwnerEmail,
			IsActive:         b.IsActive,
			SubscriptionTier: string(b.Tier()),
			CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		}
	}
	return &businessListResponse{Businesses: entries}
}
