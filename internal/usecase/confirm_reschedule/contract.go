package confirm_reschedule

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// AppointmentRepository loads, re-checks and moves the appointment.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByBusinessAndDate(ctx context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
	ConfirmReschedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Appointment, error)
}

// TransactionManager runs the overlap re-check and the move in one
// serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier pushes real-time events to the business dashboard.
type Notifier interface {
	NotifyBusiness(businessID string, event string, payload interface{})
}

// Logger is the logging interface of this use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
