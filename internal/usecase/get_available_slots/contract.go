package get_available_slots

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// BusinessRepository loads the tenant and its weekly schedule.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetOperatingHoursForDay(ctx context.Context, businessID string, day domain.Weekday) (*domain.OperatingHours, error)
}

// CatalogRepository loads the requested service and the active roster.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error)
}

// AppointmentRepository loads the appointments blocking the day.
type AppointmentRepository interface {
	GetByBusinessAndDate(ctx context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface of this use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
