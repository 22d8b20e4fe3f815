package onboard_business

import (
	"errors"
	"net/http"
	"time"

	"github.com/janjikita/booking-service/internal/api/handlers"
	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

const (
	msgInvalidRequestBody = "data permintaan tidak valid"
	msgSlugTaken          = "link booking sudah digunakan, silakan pilih yang lain"
	msgInvalidSlug        = "link booking hanya boleh berisi huruf kecil, angka dan tanda hubung"
)

type onboardRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	OwnerName   string  `json:"ownerName"`
	OwnerEmail  string  `json:"ownerEmail"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type businessResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	Description      *string `json:"description,omitempty"`
	Category         string  `json:"category"`
	OwnerName        string  `json:"ownerName"`
	OwnerEmail       string  `json:"ownerEmail"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	IsActive         bool    `json:"isActive"`
	SubscriptionTier string  `json:"subscriptionTier"`
	CreatedAt        string  `json:"createdAt"`
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

// Handle POST /api/v1/businesses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Onboard(r.Context(), &businessService.OnboardRequest{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrSlugTaken):
			handlers.RespondError(w, http.StatusConflict, msgSlugTaken)
		case errors.Is(err, businessService.ErrInvalidSlug):
			handlers.RespondBadRequest(w, msgInvalidSlug)
		case errors.Is(err, businessService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /businesses - failed: slug=%s, error=%v", req.Slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses - onboarded: id=%s, slug=%s", created.ID, created.Slug)
	handlers.RespondJSON(w, http.StatusCreated, fromDomain(created))
}

func fromDomain(b *domain.Business) *businessResponse {
	return &businessResponse{
		ID:               b.ID,
		Name:             b.Name,
		Slug:             b.Slug,
		Description:      b.Description,
		Category:         string(b.Category),
		OwnerName:        b.OwnerName,
		OwnerEmail:       b.OwnerEmail,
		Phone:            b.Phone,
		Address:          b.Address,
		IsActive:         b.IsActive,
		SubscriptionTier: string(b.Tier()),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}
