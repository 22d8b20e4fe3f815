package admin_businesses

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

type BusinessService interface {
	ListBusinesses(ctx context.Context) ([]*domain.Business, error)
	SetBusinessActive(ctx context.Context, businessID string, active bool) error
	GetPlatformStats(ctx context.Context) (*businessService.PlatformStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
