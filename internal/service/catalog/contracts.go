package catalog

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
)

// CatalogRepository is the persistence interface of this service.
type CatalogRepository interface {
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
	GetServices(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Service, error)
	UpdateService(ctx context.Context, id string, name string, description *string, durationMinutes int, price int64) (*domain.Service, error)
	SetServiceActive(ctx context.Context, id string, active bool) error
	CountActiveServices(ctx context.Context, businessID string) (int, error)

	CreateStaff(ctx context.Context, s *domain.Staff) (*domain.Staff, error)
	GetStaffMember(ctx context.Context, id string) (*domain.Staff, error)
	GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error)
	UpdateStaff(ctx context.Context, id string, name string, email, phone *string) (*domain.Staff, error)
	SetStaffActive(ctx context.Context, id string, active bool) error
	CountActiveStaff(ctx context.Context, businessID string) (int, error)
}

// BusinessRepository resolves the tenant and its subscription tier.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

// Logger is the logging interface of this service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
