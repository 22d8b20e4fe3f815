package create_appointment

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

// CatalogRepository loads the booked service and the active roster.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error)
	GetStaffMember(ctx context.Context, id string) (*domain.Staff, error)
}

// CustomerRepository implements the find-or-create-by-phone flow.
type CustomerRepository interface {
	GetByPhone(ctx context.Context, businessID, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// AppointmentRepository persists the new appointment and loads the day
// it must not conflict with.
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	GetByBusinessAndDate(ctx context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
}

// TransactionManager runs the availability re-check and the insert in
// one serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier pushes real-time events to the business dashboard.
// Best-effort: failures are logged, never surfaced to the customer.
type Notifier interface {
	NotifyBusiness(businessID string, event string, payload interface{})
}

// Mailer sends the booking confirmation email.
type Mailer interface {
	SendAppointmentConfirmation(ctx context.Context, to string, apt *domain.Appointment, business *domain.Business, service *domain.Service) error
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
