package manage_services

import "github.com/janjikita/booking-service/internal/domain"

type serviceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int64   `json:"price"`
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type serviceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int64   `json:"price"`
	IsActive        bool    `json:"isActive"`
}

type serviceListResponse struct {
	Services []*serviceResponse `json:"services"`
}

func fromDomainService(s *domain.Service) *serviceResponse {
	return &serviceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
	}
}

func fromDomainServices(services []*domain.Service) *serviceListResponse {
	out := make([]*serviceResponse, len(services))
	for i, s := range services {
		out[i] = fromDomainService(s)
	}
	return &serviceListResponse{Services: out}
}
