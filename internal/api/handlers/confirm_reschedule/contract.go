package confirm_reschedule

import (
	"context"

	confirmReschedule "github.com/janjikita/booking-service/internal/usecase/confirm_reschedule"
)

type ConfirmRescheduleUseCase interface {
	Execute(ctx context.Context, req *confirmReschedule.Request) (*confirmReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
