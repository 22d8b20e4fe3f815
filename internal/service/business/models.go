package business

import (
	"github.com/janjikita/booking-service/internal/domain"
	"github.com/janjikita/booking-service/pkg/types"
)

// OnboardRequest registers a new business.
type OnboardRequest struct {
	Name        string
	Slug        string
	Description *string
	Category    string
	OwnerName   string
	OwnerEmail  string
	Phone       *string
	Address     *string
}

// HoursUpdate sets the open window of one weekday. When ApplyToAll is
// set the window is copied to every day of the week.
type HoursUpdate struct {
	DayOfWeek  string
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	IsClosed   bool
	ApplyToAll bool
}

// BookingPage is the public aggregate served under /book/{slug}:
// everything a customer needs to pick a service and a slot.
type BookingPage struct {
	Business *domain.Business         `json:"business"`
	Services []*domain.Service        `json:"services"`
	Staff    []*domain.Staff          `json:"staff"`
	Hours    []*domain.OperatingHours `json:"operatingHours"`
}

// PlatformStats summarizes the whole platform for the admin panel.
type PlatformStats struct {
	TotalBusinesses   int64 `json:"totalBusinesses"`
	TotalAppointments int64 `json:"totalAppointments"`
	PaidRevenue       int64 `json:"paidRevenue"`
}
