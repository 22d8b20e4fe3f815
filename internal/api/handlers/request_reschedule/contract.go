package request_reschedule

import (
	"context"

	"github.com/janjikita/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	RequestReschedule(ctx context.Context, id string, reason string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
