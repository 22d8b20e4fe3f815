package create_appointment

import (
	"time"

	"github.com/janjikita/booking-service/pkg/types"
)

// Request books one service at one business. StaffID is optional: when
// empty, the first free active staff member is assigned.
type Request struct {
	BusinessID    string
	ServiceID     string
	StaffID       *string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Date          time.Time        // calendar date of the appointment
	StartTime     types.TimeString // wall-clock start, "HH:MM"
	Notes         *string
}

// Response is the created appointment.
type Response struct {
	ID            string
	BusinessID    string
	ServiceID     string
	StaffID       string
	CustomerID    *string
	CustomerName  string
	CustomerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	Notes         *string
	TotalPrice    int64
	PaymentStatus string
	CreatedAt     time.Time
}
