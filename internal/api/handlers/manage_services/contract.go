package manage_services

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
)

type CatalogService interface {
	CreateService(ctx context.Context, businessID, name string, description *string, durationMinutes int, price int64) (*domain.Service, error)
	GetServices(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Service, error)
	UpdateService(ctx context.Context, businessID, serviceID, name string, description *string, durationMinutes int, price int64) (*domain.Service, error)
	SetServiceActive(ctx context.Context, businessID, serviceID string, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
