package update_appointment_status

import (
	"context"

	"github.com/janjikita/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, id string, status string) (*models.AppointmentResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, status string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
