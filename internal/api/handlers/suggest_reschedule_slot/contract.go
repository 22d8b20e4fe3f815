package suggest_reschedule_slot

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	SuggestRescheduleSlot(ctx context.Context, id string, slot time.Time, message *string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
