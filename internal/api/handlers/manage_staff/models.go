package manage_staff

import "github.com/janjikita/booking-service/internal/domain"

type staffRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type staffResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive bool    `json:"isActive"`
}

type staffListResponse struct {
	Staff []*staffResponse `json:"staff"`
}

func fromDomainStaff(s *domain.Staff) *staffResponse {
	return &staffResponse{
		ID:       s.ID,
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		IsActive: s.IsActive,
	}
}

func fromDomainStaffList(staff []*domain.Staff) *staffListResponse {
	out := make([]*staffResponse, len(staff))
	for i, s := range staff {
		out[i] = fromDomainStaff(s)
	}
	return &staffListResponse{Staff: out}
}
