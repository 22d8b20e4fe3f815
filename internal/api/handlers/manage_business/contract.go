package manage_business

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
	catalogService "github.com/janjikita/booking-service/internal/service/catalog"
)

type BusinessService interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	UpdateProfile(ctx context.Context, id string, name string, description, phone, address *string) error
	GetOperatingHours(ctx context.Context, businessID string) ([]*domain.OperatingHours, error)
	UpdateOperatingHours(ctx context.Context, businessID string, updates []businessService.HoursUpdate) ([]*domain.OperatingHours, error)
	ChangeSubscription(ctx context.Context, businessID string, tier string) (*domain.Subscription, error)
}

type CatalogService interface {
	GetCapacityUsage(ctx context.Context, businessID string) (*catalogService.CapacityUsage, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
