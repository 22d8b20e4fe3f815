package get_booking_page

import (
	"context"

	"github.com/janjikita/booking-service/internal/service/appointments/models"
	businessService "github.com/janjikita/booking-service/internal/service/business"
)

type BusinessService interface {
	GetBookingPage(ctx context.Context, slug string) (*businessService.BookingPage, error)
}

type AppointmentsService interface {
	GetCustomerAppointments(ctx context.Context, businessID, phone string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
