package onboard_business

import (
	"context"

	"github.com/janjikita/booking-service/internal/domain"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

type BusinessService interface {
	Onboard(ctx context.Context, req *businessService.OnboardRequest) (*domain.Business, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
