package business

import (
	"context"
	"time"

	"github.com/janjikita/booking-service/internal/domain"
)

// BusinessRepository is the persistence interface of this service.
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Business, error)
	GetAll(ctx context.Context) ([]*domain.Business, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateProfile(ctx context.Context, id string, name string, description, phone, address *string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetSubscriptionTier(ctx context.Context, id string, tier domain.SubscriptionTier) error
	CountAll(ctx context.Context) (int64, error)

	GetOperatingHours(ctx context.Context, businessID string) ([]*domain.OperatingHours, error)
	UpsertOperatingHours(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error)

	CreateSubscription(ctx context.Context, s *domain.Subscription) (*domain.Subscription, error)
	GetActiveSubscription(ctx context.Context, businessID string) (*domain.Subscription, error)
}

// CatalogRepository seeds and serves the catalog and roster.
type CatalogRepository interface {
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	GetServices(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Service, error)
	GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error)
}

// AppointmentRepository feeds the platform admin stats.
type AppointmentRepository interface {
	CountAll(ctx context.Context) (int64, error)
	SumPaidRevenue(ctx context.Context) (int64, error)
}

// TransactionManager keeps the onboarding seed atomic.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
