package create_appointment

import (
	"fmt"

	"github.com/janjikita/booking-service/internal/domain"
)

// validateRequest validates the incoming request data.
func validateRequest(req *Request) error {
	if req.BusinessID == "" {
		return fmt.Errorf("%w: businessID is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateWithinHours checks that [startMin, startMin+duration] fits
// inside the open window of the day.
func validateWithinHours(hours *domain.OperatingHours, startMin, durationMinutes int) error {
	openMin, err := hours.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: bad open time: %v", ErrInternal, err)
	}
	closeMin, err := hours.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: bad close time: %v", ErrInternal, err)
	}

	if startMin < openMin || startMin+durationMinutes > closeMin {
		return ErrOutsideOperatingHours
	}

	return nil
}
