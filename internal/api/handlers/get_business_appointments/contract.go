package get_business_appointments

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetBusinessAppointments(ctx context.Context, businessID string, date *time.Time, includeCancelled bool) (*models.AppointmentListResponse, error)
	GetDashboardStats(ctx context.Context, businessID string) (*models.DashboardStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
