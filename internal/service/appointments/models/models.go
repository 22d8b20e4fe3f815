package models

import (
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// AppointmentResponse is the API-facing shape of one appointment.
// ServiceName and StaffName are resolved separately for detail views
// and stay empty in list responses.
type AppointmentResponse struct {
	ID            string     `json:"id"`
	BusinessID    string     `json:"businessId"`
	ServiceID     string     `json:"serviceId"`
	StaffID       string     `json:"staffId"`
	ServiceName   string     `json:"serviceName,omitempty"`
	StaffName     string     `json:"staffName,omitempty"`
	CustomerID    *string    `json:"customerId,omitempty"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       time.Time  `json:"endTime"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes,omitempty"`
	TotalPrice    int64      `json:"totalPrice"`
	PaymentStatus string     `json:"paymentStatus"`

	RescheduleRequestedAt *time.Time `json:"rescheduleRequestedAt,omitempty"`
	RescheduleReason      *string    `json:"rescheduleReason,omitempty"`
	SuggestedSlot         *time.Time `json:"suggestedSlot,omitempty"`
	SuggestedSlotMessage  *string    `json:"suggestedSlotMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse wraps a list of appointments.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
}

// DashboardStats summarizes a business's day for the dashboard header.
type DashboardStats struct {
	TodayCount     int   `json:"todayCount"`
	PendingCount   int   `json:"pendingCount"`
	UpcomingCount  int   `json:"upcomingCount"`
	PaidRevenue    int64 `json:"paidRevenue"`
	OpenReschedule int   `json:"openRescheduleCount"`
}

// FromDomainAppointment converts a domain appointment.
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                    apt.ID,
		BusinessID:            apt.BusinessID,
		ServiceID:             apt.ServiceID,
		StaffID:               apt.StaffID,
		CustomerID:            apt.CustomerID,
		CustomerName:          apt.CustomerName,
		CustomerPhone:         apt.CustomerPhone,
		StartTime:             apt.StartTime,
		EndTime:               apt.EndTime,
		Status:                string(apt.Status),
		Notes:                 apt.Notes,
		TotalPrice:            apt.TotalPrice,
		PaymentStatus:         string(apt.PaymentStatus),
		RescheduleRequestedAt: apt.RescheduleRequestedAt,
		RescheduleReason:      apt.RescheduleReason,
		SuggestedSlot:         apt.SuggestedSlot,
		SuggestedSlotMessage:  apt.SuggestedSlotMessage,
		CreatedAt:             apt.CreatedAt,
	}
}

// FromDomainAppointmentList converts a list of domain appointments.
func FromDomainAppointmentList(apts []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(apts))
	for i, apt := range apts {
		out[i] = FromDomainAppointment(apt)
	}
	return &AppointmentListResponse{Appointments: out}
}
