package manage_staff

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
)

type CatalogService interface {
	CreateStaff(ctx context.Context, businessID, name string, email, phone *string) (*domain.Staff, error)
	GetStaff(ctx context.Context, businessID string, activeOnly bool) ([]*domain.Staff, error)
	UpdateStaff(ctx context.Context, businessID, staffID, name string, email, phone *string) (*domain.Staff, error)
	SetStaffActive(ctx context.Context, businessID, staffID string, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
