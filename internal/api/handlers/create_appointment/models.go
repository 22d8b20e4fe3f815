package create_appointment

import (
	"time"

	"github.com/janjikita/booking-service/internal/domain"
	createAppointment "github.com/janjikita/booking-service/internal/usecase/create_appointment"
	"github.com/janjikita/booking-service/pkg/types"
)

// CreateAppointmentRequest is the HTTP request model.
type CreateAppointmentRequest struct {
	ServiceID     string  `json:"serviceId"`
	StaffID       *string `json:"staffId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse is the HTTP response model.
type AppointmentResponse struct {
	ID            string  `json:"id"`
	BusinessID    string  `json:"businessId"`
	ServiceID     string  `json:"serviceId"`
	StaffID       string  `json:"staffId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	TotalPrice    int64   `json:"totalPrice"`
	PaymentStatus string  `json:"paymentStatus"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest parses date and time into the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID:    businessID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Date:          date,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		BusinessID:    resp.BusinessID,
		ServiceID:     resp.ServiceID,
		StaffID:       resp.StaffID,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		Date:          resp.StartTime.Format(domain.DateFormat),
		StartTime:     resp.StartTime.Format(domain.TimeFormat),
		EndTime:       resp.EndTime.Format(domain.TimeFormat),
		Status:        resp.Status,
		Notes:         resp.Notes,
		TotalPrice:    resp.TotalPrice,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
