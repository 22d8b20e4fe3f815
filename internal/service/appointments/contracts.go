package appointments

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// AppointmentRepository is the persistence interface of this service.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByBusiness(ctx context.Context, businessID string) ([]*domain.Appointment, error)
	GetByBusinessAndDate(ctx context.Context, businessID string, date time.Time, includeCancelled bool) ([]*domain.Appointment, error)
	GetByCustomerPhone(ctx context.Context, businessID, phone string) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Appointment, error)
	RequestReschedule(ctx context.Context, id string, reason string, requestedAt time.Time) (*domain.Appointment, error)
	SuggestRescheduleSlot(ctx context.Context, id string, slot time.Time, message *string) (*domain.Appointment, error)
}

// CatalogRepository resolves service and staff names for detail views.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetStaffMember(ctx context.Context, id string) (*domain.Staff, error)
}

// Notifier pushes real-time events to the business dashboard and to
// customers with an open booking page.
type Notifier interface {
	NotifyBusiness(businessID string, event string, payload interface{})
	NotifyCustomer(customerID string, event string, payload interface{})
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface of this service.
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
